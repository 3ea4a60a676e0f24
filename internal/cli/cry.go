package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/meur/dexview/internal/audio"
	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/pokeapi"
	"github.com/spf13/cobra"
)

func newCryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cry <id>",
		Short: "Play a Pokemon's cry; Enter toggles playback, q quits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer := detail.NewViewer(
				detail.NewLoader(pokeapi.New(cfg.Source, logger), logger),
				audio.NewExecPlayerFactory(cfg.Audio.Player),
				logger,
			)
			defer viewer.Close()

			view, err := openRecord(cmd, viewer, args[0])
			if err != nil {
				return err
			}
			if !view.Creature.HasCry() {
				return fmt.Errorf("%s: %w", view.Creature.Name, audio.ErrNoCry)
			}

			out := &syncWriter{w: cmd.OutOrStdout()}
			view.Cry.OnChange(func(s audio.State) {
				fmt.Fprintf(out, "cry: %s\n", s)
			})

			fmt.Fprintf(out, "%s: press Enter to play or stop, q to quit\n", view.Creature.Name)
			return cryLoop(cmd, view.Cry, out)
		},
	}
}

// cryLoop feeds input lines to the machine until q, EOF or cancellation.
func cryLoop(cmd *cobra.Command, m *audio.Machine, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == "q" {
				return nil
			}
			if err := m.Play(); err != nil {
				if errors.Is(err, audio.ErrPlaybackStartFailed) {
					fmt.Fprintf(out, "could not play cry: %v\n", err)
					continue
				}
				return err
			}
		}
	}
}

// syncWriter serialises writes from the playback watcher and the input loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
