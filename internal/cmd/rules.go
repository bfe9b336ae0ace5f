package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/ui"
)

var rulesPath string

// rulesCmd inspects the rule table a generation run would use.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the parsed rule table and resolved catalogs",
	Long: `Parse and validate the rule table, then print what each field will
generate. Useful for checking a workbook before a long run: any
configuration error surfaces here exactly as it would at generation time.

Example:
  bankgen rules
  bankgen rules --rules rules.xlsx`,
	Run: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesPath, "rules", "", "path to rules workbook (.xlsx); empty shows built-in rules")
}

func runRules(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	var ruleSet *rules.RuleSet
	var catalogs rules.Catalogs
	var err error

	if rulesPath != "" {
		ruleSet, catalogs, err = rules.LoadWorkbook(rulesPath)
	} else {
		ruleSet = rules.DefaultRuleSet()
		catalogs, err = rules.ResolveCatalogs(nil)
		if err == nil {
			err = ruleSet.Validate(catalogs)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("Rule Table"))
	fmt.Println()
	for _, spec := range ruleSet.Specs {
		fmt.Println(u.KeyValue(spec.Field, describeRule(spec)))
	}

	fmt.Println()
	fmt.Println(u.Header("Catalogs"))
	fmt.Println()
	for _, name := range []string{
		rules.CatalogOccupation,
		rules.CatalogState,
		rules.CatalogAccountType,
		rules.CatalogChannel,
	} {
		vals, err := catalogs.Get(name)
		if err != nil {
			fmt.Println(u.KeyValue(name, u.Warning(err.Error())))
			continue
		}
		fmt.Println(u.KeyValue(name, fmt.Sprintf("%d values: %s", len(vals), preview(vals, 5))))
	}
}

// describeRule renders one rule spec as a human-readable line.
func describeRule(spec rules.RuleSpec) string {
	switch spec.Kind {
	case rules.KindList:
		return fmt.Sprintf("%s drawn from catalog %q", spec.Type, spec.Catalog)
	case rules.KindRange:
		return fmt.Sprintf("%s in [%d, %d]", spec.Type, spec.Min, spec.Max)
	case rules.KindDigits:
		return fmt.Sprintf("%s of %d digits", spec.Type, spec.Digits)
	case rules.KindFixedFormat:
		return fmt.Sprintf("%s in [%d, %d] (fixed format)", spec.Type, spec.Min, spec.Max)
	default:
		return string(spec.Kind)
	}
}

func preview(vals []string, n int) string {
	if len(vals) <= n {
		return strings.Join(vals, ", ")
	}
	return strings.Join(vals[:n], ", ") + ", ..."
}
