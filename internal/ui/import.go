package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/mark"
)

// Widest range a mark date can take.
var (
	firstMarkDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	lastMarkDate  = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

func (a *App) importCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import marks from another database",
		Long: `Import all marks from another almanac database into the current one.

Imported marks replace existing marks on the same day unless --keep is set.`,
		Example: `  almanac mark import /path/to/other.db
  almanac mark import ~/backup/almanac.db --keep`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			count, err := importMarks(context.Background(), a.repo, sourcePath, keep)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Imported %d marks from %s\n", count, sourcePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "Keep existing marks on conflicting days")
	return cmd
}

// importMarks copies every mark of the database at sourcePath into dest.
// With keep set, days already marked in dest are skipped.
func importMarks(ctx context.Context, dest mark.Repository, sourcePath string, keep bool) (int, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	marks, err := sourceRepo.ListMarksByDateRange(ctx, firstMarkDate, lastMarkDate)
	if err != nil {
		return 0, fmt.Errorf("listing source marks: %w", err)
	}

	imported := 0
	for _, sourceMark := range marks {
		if keep {
			existing, err := dest.GetMark(ctx, sourceMark.Date)
			if err != nil {
				return imported, fmt.Errorf("checking %s: %w", sourceMark.DateString(), err)
			}
			if existing != nil {
				continue
			}
		}

		newMark := &mark.Mark{
			Date:      sourceMark.Date,
			Note:      sourceMark.Note,
			CreatedAt: sourceMark.CreatedAt,
		}
		if err := dest.SetMark(ctx, newMark); err != nil {
			return imported, fmt.Errorf("importing mark %s: %w", sourceMark.DateString(), err)
		}
		imported++
	}

	return imported, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
