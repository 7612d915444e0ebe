package main

import (
	"context"
	"io"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/change"
)

// TaskWaiter blocks until a task reaches a terminal state.
type TaskWaiter interface {
	Wait(ctx context.Context, taskID string) (*docbase.TaskSnapshot, error)
}

// ChangeScanner checks a set of origins for upstream changes.
type ChangeScanner interface {
	ScanURLs(ctx context.Context, origins []string) (*change.ScanResult, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Configs  docbase.ConfigStore
	Meta     docbase.MetadataStore
	Changes  docbase.ChangeLog
	Index    docbase.IndexStore
	Tasks    docbase.TaskService
	Waiter   TaskWaiter
	Detector ChangeScanner
	Searcher docbase.Searcher
	Answerer docbase.Answerer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Profile ProfileCmd `cmd:"" help:"Manage ingestion profiles"`
	Ingest  IngestCmd  `cmd:"" help:"Ingest a profile's sources into its index"`
	Status  StatusCmd  `cmd:"" help:"Show the status of an ingestion task"`
	Cancel  CancelCmd  `cmd:"" help:"Cancel a running ingestion task"`
	Changes ChangesCmd `cmd:"" help:"Show detected content changes for a profile"`
	Search  SearchCmd  `cmd:"" help:"Search a profile's knowledge base"`
	Ask     AskCmd     `cmd:"" help:"Ask a question against a profile's knowledge base"`
}

// ProfileCmd groups the profile management subcommands.
type ProfileCmd struct {
	Add    ProfileAddCmd    `cmd:"" help:"Create a profile"`
	List   ProfileListCmd   `cmd:"" help:"List profiles"`
	Delete ProfileDeleteCmd `cmd:"" help:"Delete a profile and its configuration"`
}

// ProfileAddCmd is the "profile add" subcommand.
type ProfileAddCmd struct {
	Name        string   `arg:"" help:"Profile name"`
	Type        string   `default:"web" enum:"web,local,mixed" help:"Source type"`
	Domain      string   `help:"Crawl root URL for web sources"`
	AllowedPath []string `name:"allowed-path" help:"Restrict crawling to this path prefix (repeatable)"`
	Depth       int      `default:"2" help:"Maximum crawl depth"`
	Path        []string `name:"path" help:"Local file or directory to scan (repeatable)"`
	FileType    []string `name:"file-type" help:"Extension filter for local scans (repeatable)"`
}

// ProfileListCmd is the "profile list" subcommand.
type ProfileListCmd struct{}

// ProfileDeleteCmd is the "profile delete" subcommand.
type ProfileDeleteCmd struct {
	Name string `arg:"" help:"Profile name"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Profile string `arg:"" help:"Profile name"`
	Detach  bool   `help:"Start the task without waiting for completion"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	TaskID string `arg:"" help:"Task ID"`
}

// CancelCmd is the "cancel" subcommand.
type CancelCmd struct {
	TaskID string `arg:"" help:"Task ID"`
}

// ChangesCmd is the "changes" subcommand.
type ChangesCmd struct {
	Profile string `arg:"" help:"Profile name"`
	Limit   int    `default:"20" help:"Maximum records to show"`
	Stats   bool   `help:"Show counts by change kind instead of records"`
	Scan    bool   `help:"Check stored origins for upstream changes and refresh the page cache"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Profile string `arg:"" help:"Profile name"`
	Query   string `arg:"" help:"Search query"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Profile  string `arg:"" help:"Profile name"`
	Question string `arg:"" help:"Question to ask"`
}
