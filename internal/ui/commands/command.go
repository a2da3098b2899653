package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"launchscroll/internal/eventbus"
	"launchscroll/internal/fetcher"
	"launchscroll/internal/spacex"
)

// LaunchQuerier fetches pages of launches
type LaunchQuerier interface {
	QueryLaunches(ctx context.Context, q spacex.Query) (*spacex.Page, error)
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Client LaunchQuerier
	Bus    eventbus.EventBus
	Log    logrus.FieldLogger
}

// FetchResultMsg carries the outcome of a page request back to the model
type FetchResultMsg struct {
	Request  fetcher.Request
	Page     *spacex.Page
	Err      error
	Duration time.Duration
}

// FetchCommand requests one page of launches
type FetchCommand struct {
	ctx    *CommandContext
	reqCtx context.Context
	req    fetcher.Request
}

// NewFetchCommand creates a new fetch command bound to reqCtx
func NewFetchCommand(ctx *CommandContext, reqCtx context.Context, req fetcher.Request) *FetchCommand {
	return &FetchCommand{
		ctx:    ctx,
		reqCtx: reqCtx,
		req:    req,
	}
}

// Execute announces the request and returns the command that performs it
func (c *FetchCommand) Execute() tea.Cmd {
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.QueryIssuedEvent{
			Token:  c.req.Token,
			Search: c.req.Search,
			Page:   c.req.Page,
		})
	}

	client := c.ctx.Client
	reqCtx := c.reqCtx
	req := c.req
	return func() tea.Msg {
		start := time.Now()
		page, err := client.QueryLaunches(reqCtx, req.Query())
		return FetchResultMsg{
			Request:  req,
			Page:     page,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}
