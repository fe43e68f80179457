package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/cv-site/internal/schemas"
	"github.com/jonathan/cv-site/internal/types"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <cv.json>",
	Short: "Check a cv.json document",
	Long: `Validate a cv.json file against the embedded JSON schema, then lint the decoded
document for missing recommended fields. Exits non-zero on the first failing stage.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := args[0]

	if err := schemas.ValidateCVFile(path); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(out, "Validation failed: schema")
			for _, fe := range verr.Errors {
				fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%s does not match the cv.json schema", path)
		}
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := types.DecodeCVDocument(data)
	if err != nil {
		fmt.Fprintln(out, "Validation failed: decode")
		return err
	}

	if problems := doc.Lint(); len(problems) > 0 {
		fmt.Fprintln(out, "Validation failed: lint")
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("%s has %d lint problem(s)", path, len(problems))
	}

	fmt.Fprintf(out, "Validation passed: %s (%d experience, %d education, %d skill groups)\n",
		path, len(doc.Experience), len(doc.Education), len(doc.Skills))
	return nil
}
