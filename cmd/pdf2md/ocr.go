package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf2md/internal/backends"
	"github.com/thywilljoshua/pdf2md/internal/convert"
)

func ocrImagesCmd(a *app) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "ocr-images <export-id>",
		Short: "Transcribe the images saved by an earlier conversion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipeline().OCRExport(cmd.Context(), args[0], model)
			if err != nil {
				return errors.New(convert.Message(err))
			}
			if len(res) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no images under export %s\n", args[0])
				return nil
			}
			names := make([]string, 0, len(res))
			for name := range res {
				names = append(names, name)
			}
			sort.Strings(names)
			w := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(w, "== %s ==\n%s\n\n", name, res[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", backends.KeyTesseract, "back-end used to read each image")
	return cmd
}
