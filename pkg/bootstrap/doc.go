// pkg/bootstrap/doc.go
package bootstrap

/*
Package bootstrap sequences the end-to-end environment bootstrap.

It drives the single-pass state machine

    START -> INTERPRETER_FOUND -> ENVIRONMENT_READY
          -> PRIMARY_INSTALLED | PRIMARY_FAILED
          -> (FALLBACK_ATTEMPTED ->) DONE

and aggregates the stage outcomes into a Result that maps onto the
process exit status. It is the only place user-facing remediation
text is composed; the stage packages (python, venv, pip) report
structured outcomes and never print guidance themselves.

Basic Usage:

    import "github.com/blip-analyzer/envboot/pkg/bootstrap"

    b := bootstrap.New(config, nil)
    res := b.Run(ctx)
    if res.Status == bootstrap.StatusFatal {
        for i, step := range res.Remediation {
            fmt.Fprintf(os.Stderr, "%d. %s\n", i+1, step)
        }
    }
    os.Exit(res.ExitCode())

Fallback policy:

A failed primary install is retried at most once, against the CPU-only
package index, and only when pip's output attributes the failure to a
missing build of a GPU numerical package (torch and friends) for the
local interpreter. Every other failure is terminal: retrying the same
install against a different index would not help differently.

Known limitation: concurrent bootstrap runs against the same RootPath
are not locked against each other and may race on the environment
directory.
*/
