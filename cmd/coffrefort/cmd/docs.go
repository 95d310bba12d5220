package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List, upload, analyze and summarize documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		docs, err := a.docs.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents")
			return nil
		}
		for _, d := range docs {
			fmt.Printf("%s\t%s\n", d.ID, d.Label)
		}
		return nil
	},
}

var (
	uploadTitle       string
	uploadDescription string
)

var docsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		doc, err := a.docs.Upload(cmd.Context(), coffrefort.DocumentUpload{
			Title:       uploadTitle,
			Description: uploadDescription,
			Filename:    filepath.Base(args[0]),
			File:        f,
		})
		if err != nil {
			return err
		}
		if doc != nil {
			fmt.Printf("Uploaded %s (%s)\n", doc.Label, doc.ID)
		} else {
			fmt.Println("Uploaded")
		}
		return nil
	},
}

var docsAnalyzeCmd = &cobra.Command{
	Use:   "analyze <id> <file>",
	Short: "Request an AI analysis of a document's text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		text, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}

		analysis, err := a.docs.Analyze(cmd.Context(), args[0], string(text))
		if err != nil {
			return err
		}
		fmt.Println("Summary:", analysis.Summary)
		if analysis.Keywords != "" {
			fmt.Println("Keywords:", analysis.Keywords)
		}
		return nil
	},
}

var docsSummaryCmd = &cobra.Command{
	Use:   "summary <id>",
	Short: "Show the stored summary of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		text, err := a.docs.SummaryText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Println("No summary available")
			return nil
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	docsUploadCmd.Flags().StringVar(&uploadTitle, "title", "", "document title (defaults to the file name)")
	docsUploadCmd.Flags().StringVar(&uploadDescription, "description", "", "document description")
	docsCmd.AddCommand(docsListCmd, docsUploadCmd, docsAnalyzeCmd, docsSummaryCmd)
	rootCmd.AddCommand(docsCmd)
}
