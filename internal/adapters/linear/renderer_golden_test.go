package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/envsync/internal/adapters/linear"
)

// TestRenderer_Golden snapshots a full bootstrap transcript with fixed
// timestamps so the output stays deterministic.
func TestRenderer_Golden(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	r := linear.NewRenderer(stdout, stderr)

	start := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	r.OnPlanEmit([]string{"toolchain upgrade", "dependency install"})

	r.OnStepStart("s1", "", "toolchain upgrade", start)
	r.OnStepLog("s1", []byte("Requirement already satisfied: pip\n"))
	r.OnStepComplete("s1", start.Add(800*time.Millisecond), nil)

	r.OnStepStart("s2", "", "dependency install", start.Add(time.Second))
	r.OnStepLog("s2", []byte("Collecting requests\nInstalling collected packages: requests\n"))
	r.OnStepComplete("s2", start.Add(3*time.Second), errors.New("exit status 1"))

	g := goldie.New(t)
	g.Assert(t, "stdout", stdout.Bytes())
	g.Assert(t, "stderr", stderr.Bytes())
}
