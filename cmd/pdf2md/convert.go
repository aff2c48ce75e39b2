package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf2md/internal/backends"
	"github.com/thywilljoshua/pdf2md/internal/convert"
	"github.com/thywilljoshua/pdf2md/internal/markdown"
	"github.com/thywilljoshua/pdf2md/internal/registry"
)

func convertCmd(a *app) *cobra.Command {
	var model string
	var out string
	var outline bool
	var dpi int
	var imagesDir string

	cmd := &cobra.Command{
		Use:   "convert <pdf>",
		Short: "Convert a PDF and print the markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if dpi > 0 || imagesDir != "" {
				if dpi > 0 {
					a.cfg.DPI = dpi
				}
				if imagesDir != "" {
					a.cfg.ImagesDir = imagesDir
				}
				// DPI is captured by the factories, so they are rebuilt.
				a.registry = registry.New()
				if err := backends.Register(a.registry, backends.Options{Config: a.cfg, Log: a.log}); err != nil {
					return err
				}
			}

			res, err := a.pipeline().Convert(cmd.Context(), data, model)
			if err != nil {
				return errors.New(convert.Message(err))
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if outline {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(markdown.Outline(markdown.SplitSections(res.Markdown)))
			}
			if _, err := fmt.Fprintln(w, res.Markdown); err != nil {
				return err
			}
			if res.ExportID != "" && len(res.Images) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "export %s: %d image(s) in %s\n", res.ExportID, len(res.Images), res.ImagesDir)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", backends.KeyLayout, "extraction back-end key (see `pdf2md models`)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&outline, "outline", false, "print the heading outline as JSON instead of markdown")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "rasterization DPI for page-image back-ends (default from PDF2MD_DPI)")
	cmd.Flags().StringVar(&imagesDir, "images-dir", "", "where extracted images are stored (default from PDF_IMAGE_OUTPUT_DIR)")
	return cmd
}
