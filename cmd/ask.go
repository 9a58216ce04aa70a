package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/uniqa/internal/model"
)

var askID int64

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and print the JSON response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		q := model.Query{Text: strings.Join(args, " ")}
		if cmd.Flags().Changed("id") {
			q.ID = &askID
		}
		return runAsk(cmd.Context(), p, q, cmd.OutOrStdout())
	},
}

func init() {
	askCmd.Flags().Int64Var(&askID, "id", 0, "request id echoed in the response")
	rootCmd.AddCommand(askCmd)
}

func runAsk(ctx context.Context, h questionHandler, q model.Query, out io.Writer) error {
	resp := h.Handle(ctx, q)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return eris.Wrap(err, "ask: encode response")
	}
	return nil
}
