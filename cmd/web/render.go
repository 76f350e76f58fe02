package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/portfolio"
)

var (
	renderLang string
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the page once and write it to a file or stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cfg, "stderr")
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		lang := content.ParseLang(renderLang)
		page, err := a.controller.Open(cmd.Context(), lang)
		if err != nil {
			if errors.Is(err, portfolio.ErrContentUnavailable) {
				return fmt.Errorf("render %s: %w", lang, err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		if renderOut != "" && renderOut != "-" {
			f, err := os.Create(renderOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", renderOut, err)
			}
			defer f.Close()
			out = f
		}
		if err := page.Render(out); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		a.logger.Info("page written", zap.String("lang", lang.String()), zap.String("out", renderOut))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderLang, "lang", "fr", "page language (fr or en)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
}
