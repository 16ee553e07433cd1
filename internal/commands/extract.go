package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/export"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/pipeline"
)

func newExtractCommand() *cobra.Command {
	var chatbot bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a single OCR text file and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			pipe := pipeline.New(slog.Default(), nil)
			receipt := pipe.Process(cmd.Context(), pipeline.Document{
				Text:       string(data),
				SourceName: filepath.Base(args[0]),
			})

			var out any = receipt
			if chatbot {
				rec := export.BuildChatbotRecord(receipt)
				raw, err := json.Marshal(rec)
				if err != nil {
					return fmt.Errorf("marshal record %s: %w", rec.IDTransacao, err)
				}
				if err := export.ValidateJSONAgainstSchema(export.BuildChatbotRecordSchema(), raw); err != nil {
					return err
				}
				out = rec
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "    ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&chatbot, "chatbot", false, "print the chatbot wire shape instead of the canonical receipt")

	return cmd
}
