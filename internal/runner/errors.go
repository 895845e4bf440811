package runner

import "fmt"

// ProvisioningError means the execution environment could not be set up.
// The run aborts before the script is started.
type ProvisioningError struct {
	Op  string
	Err error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed: %s: %v", e.Op, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// DependencyInstallError means the manifest install attempt failed.
// It is logged and swallowed: execution proceeds regardless.
type DependencyInstallError struct {
	Manifest string
	Err      error
}

func (e *DependencyInstallError) Error() string {
	return fmt.Sprintf("dependency install from %s failed: %v", e.Manifest, e.Err)
}

func (e *DependencyInstallError) Unwrap() error {
	return e.Err
}

// ScriptExecutionError means the script ran and exited non-zero, or
// could not be started at all (ExitCode -1, Err set).
type ScriptExecutionError struct {
	Job      string
	ExitCode int
	Err      error
}

func (e *ScriptExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job %s: script execution failed: %v", e.Job, e.Err)
	}
	return fmt.Sprintf("job %s: script exited with code %d", e.Job, e.ExitCode)
}

func (e *ScriptExecutionError) Unwrap() error {
	return e.Err
}
