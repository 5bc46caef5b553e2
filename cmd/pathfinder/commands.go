package pathfinder

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/pathfinder/internal/version"
	"github.com/arthur-debert/pathfinder/pkg/config"
	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/filemanager"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/paths"
	"github.com/arthur-debert/pathfinder/pkg/types"
	"github.com/arthur-debert/pathfinder/pkg/ui"
)

// resolveLocation parses a location argument: a standard location name
// or NAME[module] for a module inside a module-oriented location
func resolveLocation(fm *filemanager.Manager, arg string) (locations.Location, error) {
	name, module, isModule := strings.Cut(arg, "[")
	loc := locations.LocationFor(name)
	if !slices.Contains(locations.Standard, loc) {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgUnknownLocation, name)
	}
	if !isModule {
		return loc, nil
	}

	module = strings.TrimSuffix(module, "]")
	m, err := fm.GetLocationForModule(loc, module)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.Newf(errors.ErrNotFound, MsgErrNoModule, module, loc.Name())
	}
	return m, nil
}

func locationView(fm *filemanager.Manager, loc locations.Location) (ui.LocationView, error) {
	entries, err := fm.GetLocation(loc)
	if err != nil {
		return ui.LocationView{}, err
	}
	reg := fm.Registry()
	return ui.LocationView{
		Location: loc.Name(),
		Kind:     reg.Kind(loc).String(),
		Explicit: reg.IsExplicit(loc),
		Entries:  entries,
	}, nil
}

func newPathsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "paths [LOCATION...]",
		Short:   MsgPathsShort,
		Long:    MsgPathsLong,
		GroupID: "query",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(s *session, r ui.Renderer) error {
				var locs []locations.Location
				if len(args) == 0 {
					for _, l := range locations.Standard {
						locs = append(locs, l)
					}
				}
				for _, arg := range args {
					loc, err := resolveLocation(s.fm, arg)
					if err != nil {
						return err
					}
					locs = append(locs, loc)
				}

				views := make([]ui.LocationView, 0, len(locs))
				for _, loc := range locs {
					v, err := locationView(s.fm, loc)
					if err != nil {
						return err
					}
					views = append(views, v)
				}
				return r.RenderLocations(views)
			})
		},
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var (
		kinds   string
		recurse bool
	)
	cmd := &cobra.Command{
		Use:     "list LOCATION [PACKAGE]",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "query",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := types.AllKinds
			if kinds != "" {
				parsed, err := types.ParseKinds(kinds)
				if err != nil {
					return errors.Wrap(err, errors.ErrInvalidInput, MsgErrKind)
				}
				set = parsed
			}
			pkg := ""
			if len(args) == 2 {
				pkg = args[1]
			}

			return run(cmd, opts, func(s *session, r ui.Renderer) error {
				loc, err := resolveLocation(s.fm, args[0])
				if err != nil {
					return err
				}
				files, listErr := s.fm.List(loc, pkg, set, recurse)
				if err := r.RenderFiles(ui.NewFilesView(loc.Name(), pkg, files)); err != nil {
					return err
				}
				return listErr
			})
		},
	}
	cmd.Flags().StringVarP(&kinds, "kind", "k", "", MsgFlagKind)
	cmd.Flags().BoolVarP(&recurse, "recursive", "r", false, MsgFlagRecurse)
	return cmd
}

func newFindCmd(opts *globalOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:     "find LOCATION NAME",
		Short:   MsgFindShort,
		Long:    MsgFindLong,
		GroupID: "query",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(s *session, r ui.Renderer) error {
				loc, err := resolveLocation(s.fm, args[0])
				if err != nil {
					return err
				}

				var f *container.FileObject
				if kind != "" {
					k, err := types.ParseKind(kind)
					if err != nil {
						return errors.Wrap(err, errors.ErrInvalidInput, MsgErrKind)
					}
					f, err = s.fm.GetJavaFileForInput(loc, args[1], k)
					if err != nil {
						return err
					}
				} else {
					f, err = s.fm.GetFileForInput(loc, "", args[1])
					if err != nil {
						return err
					}
				}
				if f == nil {
					return errors.Newf(errors.ErrNotFound, MsgErrNotFound, args[1], loc.Name())
				}

				pkg := f.RelativeName().Dirname().Package()
				return r.RenderFiles(ui.NewFilesView(loc.Name(), pkg, []*container.FileObject{f}))
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", MsgFlagFindKind)
	return cmd
}

func newModulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "modules LOCATION",
		Short:   MsgModulesShort,
		Long:    MsgModulesLong,
		GroupID: "query",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(s *session, r ui.Renderer) error {
				loc, err := resolveLocation(s.fm, args[0])
				if err != nil {
					return err
				}
				groups, err := s.fm.ListLocationsForModules(loc)
				if err != nil {
					return err
				}
				return r.RenderModules(ui.NewModulesView(loc.Name(), groups))
			})
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			p, err := paths.New("")
			if err != nil {
				return err
			}
			target := p.ConfigFilePath()
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrap(err, errors.ErrDirCreate, MsgErrWriteConfig).WithPath(target)
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrap(err, errors.ErrFileCreate, MsgErrWriteConfig).WithPath(target)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
