package dtdl

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/c360studio/fabriconv/errors"
)

// contextPrefix introduces the language version in @context entries.
const contextPrefix = "dtmi:dtdl:context;"

// SupportedVersions lists the accepted language versions.
var SupportedVersions = []int{2, 3, 4}

// dtmiPattern validates interface identifiers. The version suffix is
// optional from v3 on.
var dtmiPattern = regexp.MustCompile(
	`^dtmi:[A-Za-z](?:[A-Za-z0-9_]*[A-Za-z0-9])?(?::[A-Za-z](?:[A-Za-z0-9_]*[A-Za-z0-9])?)*(?:;[1-9][0-9]*)?$`)

// IsValidDTMI reports whether an identifier is DTMI-shaped.
func IsValidDTMI(id string) bool {
	return dtmiPattern.MatchString(id)
}

// lastDTMISegment returns the final path segment of a DTMI, version
// stripped. Used as the fallback interface name.
func lastDTMISegment(dtmi string) string {
	s := dtmi
	if i := strings.LastIndex(s, ";"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Document is a parsed DTDL document: its interfaces plus the detected
// language version.
type Document struct {
	Interfaces []Interface
	Version    int
}

// Parse reads a DTDL document holding a single interface object or an array
// of them. The language version comes from the first @context entry naming
// one; documents without any version context default to 2.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.WrapFatal(errors.ErrEmptyInput, "Parser", "Parse", "check input")
	}

	var interfaces []Interface
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &interfaces); err != nil {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %v", errors.ErrParsingFailed, err),
				"Parser", "Parse", "decode interface array")
		}
	} else {
		var single Interface
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %v", errors.ErrParsingFailed, err),
				"Parser", "Parse", "decode interface")
		}
		interfaces = []Interface{single}
	}

	if len(interfaces) == 0 {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: document holds no interfaces", errors.ErrEmptyInput),
			"Parser", "Parse", "check interfaces")
	}

	version, err := detectVersion(interfaces)
	if err != nil {
		return nil, err
	}
	return &Document{Interfaces: interfaces, Version: version}, nil
}

// detectVersion scans @context entries for the language version.
func detectVersion(interfaces []Interface) (int, error) {
	for _, iface := range interfaces {
		for _, ctx := range iface.Context {
			if !strings.HasPrefix(ctx, contextPrefix) {
				continue
			}
			v, err := strconv.Atoi(strings.TrimPrefix(ctx, contextPrefix))
			if err != nil {
				return 0, errors.WrapFatal(
					fmt.Errorf("%w: malformed context %q", errors.ErrUnsupportedFormat, ctx),
					"Parser", "detectVersion", "parse context version")
			}
			for _, supported := range SupportedVersions {
				if v == supported {
					return v, nil
				}
			}
			return 0, errors.WrapFatal(
				fmt.Errorf("%w: DTDL version %d not supported", errors.ErrUnsupportedFormat, v),
				"Parser", "detectVersion", "check context version")
		}
	}
	return 2, nil
}
