package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/envsync/internal/app"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestComponents(t *testing.T) (*app.Components, *mocks.MockConfigLoader, *mocks.MockExecutor) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockStore := mocks.NewMockRunInfoStore(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)

	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := app.New(mockLoader, mockExecutor, mockLogger, mockStore, mockWatcher).
		WithStreams(new(bytes.Buffer), new(bytes.Buffer))

	return &app.Components{App: application, Logger: mockLogger}, mockLoader, mockExecutor
}

// TestRun_Version verifies that the version command succeeds without
// touching the application logic.
func TestRun_Version(t *testing.T) {
	components, _, _ := newTestComponents(t)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component
// initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_DelegatedExitStatus verifies that a failing delegated tool's
// exit status becomes the process exit status unchanged.
func TestRun_DelegatedExitStatus(t *testing.T) {
	components, mockLoader, mockExecutor := newTestComponents(t)

	cfg := &domain.Config{
		Root:      t.TempDir(),
		Python:    "python3",
		Manifest:  "requirements.txt",
		Toolchain: domain.DefaultToolchain(),
	}
	mockLoader.EXPECT().Load(".").Return(cfg, nil)
	mockExecutor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.NewExitError(9)).
		Times(1)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), nil, new(bytes.Buffer), provider)
	assert.Equal(t, 9, exitCode)
}

// TestRun_InternalErrorIsOne verifies that errors of our own making map
// to exit status 1.
func TestRun_InternalErrorIsOne(t *testing.T) {
	components, mockLoader, _ := newTestComponents(t)
	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), nil, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
