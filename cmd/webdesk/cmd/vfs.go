package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

var mkdirParent string

var vfsCmd = &cobra.Command{
	Use:   "vfs",
	Short: "Inspect and edit the virtual file system",
}

var vfsTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the file system tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFS(cmd.Context(), func(fs *vfs.FS) error {
			printNode(cmd.OutOrStdout(), fs.Tree(), 0)
			return nil
		})
	},
}

var vfsLsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List a folder's children (root by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := vfs.RootID
		if len(args) == 1 {
			parent = id.ItemID(args[0])
		}
		return withFS(cmd.Context(), func(fs *vfs.FS) error {
			if _, ok := fs.Get(parent); !ok {
				return fmt.Errorf("%s: %w", parent, vfs.ErrParentNotFound)
			}
			for _, item := range fs.Children(parent) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-30s %s\n", item.Type, item.ID, item.Name)
			}
			return nil
		})
	},
}

var vfsMkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFS(cmd.Context(), func(fs *vfs.FS) error {
			item, err := fs.CreateFolder(cmd.Context(), args[0], id.ItemID(mkdirParent))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		})
	},
}

var vfsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an item and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFS(cmd.Context(), func(fs *vfs.FS) error {
			removed, err := fs.Delete(cmd.Context(), id.ItemID(args[0]))
			if err != nil {
				return err
			}
			if removed == 0 {
				return fmt.Errorf("%s: no such item", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d item(s)\n", removed)
			return nil
		})
	},
}

func withFS(ctx context.Context, fn func(*vfs.FS) error) error {
	st, done, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer done()

	fs := vfs.New(st).WithLogger(logger)
	if err := fs.Load(ctx); err != nil {
		return err
	}
	return fn(fs)
}

func printNode(w io.Writer, n vfs.Node, depth int) {
	name := n.Name
	if n.IsFolder() {
		name += "/"
	}
	fmt.Fprintf(w, "%s%s  (%s)\n", strings.Repeat("  ", depth), name, n.ID)
	for _, child := range n.Children {
		printNode(w, child, depth+1)
	}
}

func init() {
	vfsMkdirCmd.Flags().StringVar(&mkdirParent, "parent", "", "parent folder id (root by default)")
	vfsCmd.AddCommand(vfsTreeCmd, vfsLsCmd, vfsMkdirCmd, vfsRmCmd)
	rootCmd.AddCommand(vfsCmd)
}
