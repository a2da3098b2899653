package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"launchscroll/internal/eventbus"
	"launchscroll/internal/fetcher"
)

// Executor handles command execution. It owns the context of the in-flight
// fetch so that a newer request cancels the one it supersedes.
type Executor struct {
	ctx    *CommandContext
	parent context.Context
	cancel context.CancelFunc
}

// NewExecutor creates a new command executor
func NewExecutor(parent context.Context, client LaunchQuerier, bus eventbus.EventBus, log logrus.FieldLogger) *Executor {
	if parent == nil {
		parent = context.Background()
	}
	return &Executor{
		ctx: &CommandContext{
			Client: client,
			Bus:    bus,
			Log:    log,
		},
		parent: parent,
	}
}

// ExecuteFetch cancels the previous fetch and starts req. A nil request
// yields no command.
func (e *Executor) ExecuteFetch(req *fetcher.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	e.Cancel()

	reqCtx, cancel := context.WithCancel(e.parent)
	e.cancel = cancel

	if e.ctx.Log != nil {
		e.ctx.Log.WithFields(logrus.Fields{
			"token":  req.Token,
			"search": req.Search,
			"page":   req.Page,
			"offset": req.Offset(),
		}).Debug("issuing launch query")
	}

	cmd := NewFetchCommand(e.ctx, reqCtx, *req)
	return cmd.Execute()
}

// Cancel aborts the in-flight fetch, if any
func (e *Executor) Cancel() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}
