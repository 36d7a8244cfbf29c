package steps

import (
	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/layout/audit"
)

// Audit checks the finished layout for connectivity problems and records them
// on the context. In strict mode a disconnected layout fails the run.
type Audit[T AuditContext] struct {
	Strict bool
}

func (s *Audit[T]) Apply(ctx T) error {
	m := ctx.Tiles()
	report := audit.Check(m)
	problems := report.Problems()
	if report.HasEntrance {
		if msg := m.Validate(); msg != "" {
			problems = append(problems, msg)
		}
	}
	for _, msg := range problems {
		ctx.AddProblem(msg)
		ctx.Logger().Printf("audit: %s", msg)
	}
	if s.Strict && !report.Connected() {
		return fault.Disconnectedf("%d regions, %d unreachable exits", report.Regions, len(report.UnreachableExits))
	}
	return nil
}
