//go:build nostack

package errors

// captureStack is a no-op under the nostack build tag, compiling out the
// runtime.Callers walk entirely for latency-sensitive deployments.
func captureStack(skip int) string {
	return ""
}
