package archive

import (
	"time"

	"github.com/google/uuid"

	"github.com/pandaypr/ReinforcementLearning/internal/config"
	"github.com/pandaypr/ReinforcementLearning/mdp"
)

type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Run is one archived solve.
type Run struct {
	VersionedRecord
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Config     config.Config     `json:"config"`
	Values     mdp.ValueFunction `json:"values"`
	Policy     mdp.Policy        `json:"policy"`
	Iterations int               `json:"iterations"`
	Sweeps     []int             `json:"sweeps"`
	Converged  bool              `json:"converged"`
	Error      string            `json:"error,omitempty"`
}

// NewRun captures sol under a fresh id. solveErr is the error Solve returned
// alongside sol, if any.
func NewRun(cfg config.Config, sol *mdp.Solution, solveErr error) Run {
	run := Run{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Config:          cfg,
		Converged:       solveErr == nil,
	}
	if solveErr != nil {
		run.Error = solveErr.Error()
	}
	if sol != nil {
		run.Values = sol.Values.Clone()
		run.Policy = sol.Policy.Clone()
		run.Iterations = sol.Iterations
		for _, ev := range sol.Evaluations {
			run.Sweeps = append(run.Sweeps, ev.Sweeps)
		}
	}
	return run
}
