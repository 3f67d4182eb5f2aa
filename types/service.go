package types

import "context"

// MemoryGuard is the pre-flight memory check consulted by front-ends before
// parsing large inputs. Implementations live outside the conversion core
// (see pkg/memguard); the core only decides whether to proceed.
type MemoryGuard interface {
	// Check reports whether a document of the given size (in MB) can be
	// parsed safely. The message explains the decision either way. When
	// force is true size limits are bypassed but the message still warns.
	Check(sizeMB float64, force bool) (canProceed bool, message string)
}

// ChunkReader yields bounded chunks of an oversized source document so the
// same front-end logic can run incrementally. Implementations own all file
// I/O and cancellation; the core never blocks on anything else.
type ChunkReader interface {
	// Next returns the next chunk, or io.EOF when the source is exhausted.
	Next(ctx context.Context) ([]byte, error)
}

// ComplianceChecker inspects a finished conversion result and returns
// advisory warnings (never errors) to attach to it. Used for target-system
// limit checks after conversion.
type ComplianceChecker interface {
	Check(result *ConversionResult) []string
}
