package fabriconv

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/fabriconv/config"
	"github.com/c360studio/fabriconv/dtdl"
	"github.com/c360studio/fabriconv/errors"
	"github.com/c360studio/fabriconv/export"
	"github.com/c360studio/fabriconv/idgen"
	"github.com/c360studio/fabriconv/metric"
	"github.com/c360studio/fabriconv/pkg/memguard"
	"github.com/c360studio/fabriconv/rdfconv"
	"github.com/c360studio/fabriconv/rdfio"
	"github.com/c360studio/fabriconv/types"
	"github.com/c360studio/fabriconv/validate"
)

// Pipeline wires the front-ends, shared passes and compliance checking into
// one conversion service. A single pipeline may convert many documents; the
// sequential id generator is shared so RDF-derived ids never collide across
// files of one compilation.
type Pipeline struct {
	cfg      *config.Config
	log      *slog.Logger
	gen      *idgen.Generator
	registry *metric.Registry
	checker  types.ComplianceChecker
	guard    types.MemoryGuard
}

// NewPipeline creates a pipeline with the gopsutil memory guard and default
// compliance limits.
func NewPipeline(cfg *config.Config, log *slog.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		gen:      idgen.NewGenerator(cfg.IDPrefix),
		registry: metric.NewRegistry(),
		checker:  validate.NewChecker(),
		guard:    memguard.New(),
	}
}

// MetricsRegistry exposes the pipeline's metrics for hosts that scrape them.
func (p *Pipeline) MetricsRegistry() *metric.Registry {
	return p.registry
}

// ConvertFile converts one source document, dispatching on the file
// extension: .json is an interface definition document, everything else
// must carry a recognized RDF extension.
func (p *Pipeline) ConvertFile(path string) (types.ConversionResult, error) {
	start := time.Now()

	var result types.ConversionResult
	var err error
	var format string
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "dtdl"
		result, err = p.convertDTDLFile(path)
	} else {
		format = "rdf"
		result, err = p.convertRDFFile(path)
	}

	status := "success"
	if err != nil {
		status = "error"
		p.registry.Metrics.ConversionErrors.
			WithLabelValues(format, errors.Classify(err).String()).Inc()
	}
	p.registry.Metrics.ObserveConversion(format, status, time.Since(start))
	if err != nil {
		return result, err
	}

	result.Warnings = append(result.Warnings, p.checker.Check(&result)...)
	return result, nil
}

func (p *Pipeline) convertRDFFile(path string) (types.ConversionResult, error) {
	loader := rdfio.Loader{Guard: p.guard, Force: p.cfg.Force}
	g, msg, err := loader.LoadFile(path)
	if msg != "" {
		p.log.Info("memory pre-flight", "file", path, "result", msg)
	}
	if err != nil {
		if errors.Is(err, errors.ErrInsufficientMemory) {
			p.registry.Metrics.MemoryRejected.Inc()
		}
		return types.ConversionResult{}, err
	}
	if p.cfg.Force && msg != "" {
		p.registry.Metrics.MemoryOverrides.Inc()
	}

	conv := rdfconv.New(p.cfg, p.gen, p.log).WithMetrics(p.registry.Metrics)
	return conv.Convert(g)
}

func (p *Pipeline) convertDTDLFile(path string) (types.ConversionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ConversionResult{}, errors.WrapFatal(err, "Pipeline", "ConvertFile", "read input file")
	}
	p.registry.Metrics.InputSizeBytes.Observe(float64(len(data)))

	doc, err := dtdl.Parse(data)
	if err != nil {
		return types.ConversionResult{}, err
	}
	conv := dtdl.New(p.cfg, p.log).WithMetrics(p.registry.Metrics)
	return conv.Convert(doc)
}

// ConvertFiles converts several documents and merges their results. The
// first fatal error aborts the batch.
func (p *Pipeline) ConvertFiles(paths []string) (types.ConversionResult, error) {
	if len(paths) == 0 {
		return types.ConversionResult{}, errors.WrapFatal(
			fmt.Errorf("%w: no input files", errors.ErrEmptyInput),
			"Pipeline", "ConvertFiles", "check inputs")
	}

	var merged types.ConversionResult
	for i, path := range paths {
		result, err := p.ConvertFile(path)
		if err != nil {
			return merged, err
		}
		if i == 0 {
			merged = result
		} else {
			merged = merged.Merge(result)
		}
	}
	return merged, nil
}

// Export writes the parts document for a result onto w.
func (p *Pipeline) Export(w io.Writer, result *types.ConversionResult, displayName string) error {
	s := export.Serializer{DisplayName: displayName}
	return s.Write(w, result)
}
