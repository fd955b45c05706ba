package sequencer_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/envsync/internal/core/ports/mocks"
	"go.trai.ch/envsync/internal/engine/sequencer"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// newMockTracer returns a tracer whose spans write to io.Discard and
// accept any lifecycle calls.
func newMockTracer(ctrl *gomock.Controller) *mocks.MockTracer {
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().
		Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			span := mocks.NewMockSpan(ctrl)
			span.EXPECT().Writer().Return(io.Discard).AnyTimes()
			span.EXPECT().RecordError(gomock.Any()).AnyTimes()
			span.EXPECT().End().AnyTimes()
			return ctx, span
		}).
		AnyTimes()
	return tracer
}

func TestRun_ExecutesStepsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var order []string
	step := func(name string) sequencer.Step {
		return sequencer.Step{
			Name: name,
			Run: func(_ context.Context, _, _ io.Writer) error {
				order = append(order, name)
				return nil
			},
		}
	}

	s := sequencer.New(newMockTracer(ctrl))
	err := s.Run(context.Background(), []sequencer.Step{
		step("toolchain upgrade"),
		step("dependency install"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"toolchain upgrade", "dependency install"}, order)
	assert.Equal(t, sequencer.StatusCompleted, s.Status("toolchain upgrade"))
	assert.Equal(t, sequencer.StatusCompleted, s.Status("dependency install"))
}

func TestRun_FailFastSkipsLaterSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	installerCalled := false
	steps := []sequencer.Step{
		{
			Name: "toolchain upgrade",
			Run: func(_ context.Context, _, _ io.Writer) error {
				return zerr.Wrap(domain.NewExitError(3), domain.ErrToolchainUpgradeFailed.Error())
			},
		},
		{
			Name: "dependency install",
			Run: func(_ context.Context, _, _ io.Writer) error {
				installerCalled = true
				return nil
			},
		},
	}

	s := sequencer.New(newMockTracer(ctrl))
	err := s.Run(context.Background(), steps)

	require.Error(t, err)
	assert.False(t, installerCalled, "dependency install must never run after an upgrade failure")
	assert.Equal(t, 3, domain.ExitStatus(err))
	assert.Equal(t, sequencer.StatusFailed, s.Status("toolchain upgrade"))
	assert.Equal(t, sequencer.StatusSkipped, s.Status("dependency install"))
}

func TestRun_SecondStepFailureKeepsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	steps := []sequencer.Step{
		{
			Name: "toolchain upgrade",
			Run:  func(_ context.Context, _, _ io.Writer) error { return nil },
		},
		{
			Name: "dependency install",
			Run: func(_ context.Context, _, _ io.Writer) error {
				return zerr.Wrap(domain.NewExitError(2), domain.ErrDependencyInstallFailed.Error())
			},
		},
	}

	s := sequencer.New(newMockTracer(ctrl))
	err := s.Run(context.Background(), steps)

	require.Error(t, err)
	assert.Equal(t, 2, domain.ExitStatus(err))
	assert.Equal(t, sequencer.StatusCompleted, s.Status("toolchain upgrade"))
	assert.Equal(t, sequencer.StatusFailed, s.Status("dependency install"))
}

func TestRun_CanceledContextRunsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	s := sequencer.New(newMockTracer(ctrl))
	err := s.Run(ctx, []sequencer.Step{{
		Name: "toolchain upgrade",
		Run: func(_ context.Context, _, _ io.Writer) error {
			ran = true
			return nil
		},
	}})

	require.Error(t, err)
	assert.False(t, ran)
	assert.Equal(t, sequencer.StatusSkipped, s.Status("toolchain upgrade"))
}

func TestRun_EmptyPlanSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := sequencer.New(newMockTracer(ctrl))
	require.NoError(t, s.Run(context.Background(), nil))
}
