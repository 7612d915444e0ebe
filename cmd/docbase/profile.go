package main

import (
	"fmt"

	"github.com/docbase/docbase"
)

// Run executes the profile add command.
func (c *ProfileAddCmd) Run(deps *Dependencies) error {
	if _, err := deps.Configs.Load(deps.Ctx, c.Name); err == nil {
		fmt.Fprintf(deps.Stderr, "error: profile %q already exists. Use 'docbase profile delete' first.\n", c.Name)
		return docbase.Errorf(docbase.ECONFLICT, "profile %q already exists", c.Name)
	} else if docbase.ErrorCode(err) != docbase.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	cfg := docbase.DefaultConfig()
	cfg.Source = docbase.Source{
		Type:         docbase.SourceType(c.Type),
		Domain:       c.Domain,
		AllowedPaths: c.AllowedPath,
		Depth:        c.Depth,
		LocalPaths:   c.Path,
		FileTypes:    c.FileType,
	}
	if err := cfg.Source.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	if err := deps.Configs.Save(deps.Ctx, c.Name, &cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Profile %q created.\n", c.Name)
	return nil
}

// Run executes the profile list command.
func (c *ProfileListCmd) Run(deps *Dependencies) error {
	profiles, err := deps.Configs.List(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintln(deps.Stdout, "No profiles found. Use 'docbase profile add' to create one.")
		return nil
	}

	for _, name := range profiles {
		cfg, err := deps.Configs.Load(deps.Ctx, name)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%s  (unreadable config)\n", name)
			continue
		}
		switch cfg.Source.Type {
		case docbase.SourceLocal:
			fmt.Fprintf(deps.Stdout, "%s  local  %d path(s)\n", name, len(cfg.Source.LocalPaths))
		case docbase.SourceMixed:
			fmt.Fprintf(deps.Stdout, "%s  mixed  %s + %d path(s)\n", name, cfg.Source.Domain, len(cfg.Source.LocalPaths))
		default:
			fmt.Fprintf(deps.Stdout, "%s  web  %s\n", name, cfg.Source.Domain)
		}
	}

	return nil
}

// Run executes the profile delete command.
func (c *ProfileDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Configs.Delete(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Profile %q deleted.\n", c.Name)
	return nil
}
