package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/batch"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/common"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/export"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/ingest"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/pipeline"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/store"
)

func newProcessCommand() *cobra.Command {
	var (
		inputDir  string
		outputDir string
		xlsx      bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process a directory of OCR text files into the JSON artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.LoadConfig()
			if inputDir != "" {
				cfg.Batch.InputDir = inputDir
			}
			if outputDir != "" {
				cfg.Batch.OutputDir = outputDir
			}
			if workers > 0 {
				cfg.Batch.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runProcess(cmd, cfg, xlsx)
		},
	}

	cmd.Flags().StringVar(&inputDir, "dir", "", "directory with OCR .txt files (default from EXTRACTOR_INPUT_DIR)")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory for artifacts (default from EXTRACTOR_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also write an XLSX summary workbook")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent pipeline workers (default from EXTRACTOR_WORKERS)")

	return cmd
}

func runProcess(cmd *cobra.Command, cfg *common.Config, xlsx bool) error {
	ctx := cmd.Context()
	logger := slog.Default()
	start := time.Now()

	ingestor := ingest.NewFSIngestor(logger)
	docs, stats, err := ingestor.IngestDirectory(ctx, cfg.Batch.InputDir)
	if err != nil {
		return common.WrapError(err, "ingest "+cfg.Batch.InputDir)
	}
	if len(docs) == 0 {
		return common.NewAppError("NO_INPUT",
			fmt.Sprintf("no OCR text files found in %s", cfg.Batch.InputDir), common.ErrNotFound)
	}

	runner := batch.NewRunner(logger, pipeline.New(logger, nil),
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithProcessTimeout(cfg.Batch.ProcessTimeout),
	)
	receipts, err := runner.Run(ctx, docs)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	now := time.Now().UTC()
	structured := export.BuildStructuredResults(receipts, now)
	chatbot := export.BuildChatbotData(receipts, now)

	// Every record must satisfy the chatbot contract before it is shared.
	// The schema compiles once per run.
	schema, err := export.CompileSchema(export.BuildChatbotRecordSchema())
	if err != nil {
		return err
	}
	for _, rec := range chatbot.Transacoes {
		if err := export.ValidateRecord(schema, rec); err != nil {
			return common.NewAppError("SCHEMA_INVALID", err.Error(), common.ErrValidation)
		}
	}

	structuredPath := filepath.Join(cfg.Batch.OutputDir, export.StructuredResultsFile)
	if err := export.WriteJSON(structuredPath, structured); err != nil {
		return err
	}
	chatbotPath := filepath.Join(cfg.Batch.OutputDir, export.ChatbotDataFile)
	if err := export.WriteJSON(chatbotPath, chatbot); err != nil {
		return err
	}

	if xlsx {
		data, err := export.ExportReceiptsXLSX(logger, receipts)
		if err != nil {
			return err
		}
		xlsxPath := filepath.Join(cfg.Batch.OutputDir, "comprovantes.xlsx")
		if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", xlsxPath, err)
		}
	}

	if cfg.Store.Enabled {
		st, err := store.Open(ctx, cfg.Store.DSN, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveBatch(ctx, receipts); err != nil {
			return err
		}
	}

	logger.Info("process.ok",
		"scanned", stats.Scanned,
		"processed", len(receipts),
		"succeeded", structured.Metadata.ComSucesso,
		"failed", structured.Metadata.ComErro,
		"output_dir", cfg.Batch.OutputDir,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Processados %d comprovantes (%d com sucesso, %d com erro)\n",
		structured.Metadata.TotalProcessados, structured.Metadata.ComSucesso, structured.Metadata.ComErro)
	return nil
}
