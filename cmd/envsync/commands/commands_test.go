package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/cmd/envsync/commands"
	"go.trai.ch/envsync/internal/build"
	"go.trai.ch/envsync/internal/core/domain"
)

type mockApp struct {
	syncFunc  func(ctx context.Context) error
	watchFunc func(ctx context.Context) error
}

func (m *mockApp) Sync(ctx context.Context) error {
	if m.syncFunc != nil {
		return m.syncFunc(ctx)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx)
	}
	return nil
}

func TestCommands_Root(t *testing.T) {
	t.Run("bare invocation runs the bootstrap", func(t *testing.T) {
		called := false
		mock := &mockApp{
			syncFunc: func(_ context.Context) error {
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs(nil)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("propagates the delegated exit status", func(t *testing.T) {
		mock := &mockApp{
			syncFunc: func(_ context.Context) error {
				return domain.NewExitError(7)
			},
		}

		cli := commands.New(mock)
		cli.SetArgs(nil)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Equal(t, 7, domain.ExitStatus(err))
	})
}

func TestCommands_Watch(t *testing.T) {
	called := false
	mock := &mockApp{
		watchFunc: func(_ context.Context) error {
			called = true
			return nil
		},
		syncFunc: func(_ context.Context) error {
			panic("root command should not run")
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{
		syncFunc: func(_ context.Context) error {
			panic("root command should not run")
		},
	}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
