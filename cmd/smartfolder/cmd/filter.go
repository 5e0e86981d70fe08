package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/focusdeck/smartfolder/internal/core/config"
	"github.com/focusdeck/smartfolder/internal/rules"
	"github.com/focusdeck/smartfolder/internal/types"
)

var (
	rulesFile   string
	presetName  string
	recordsFile string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply a rule set to a stream of JSON records",
	Long: `filter reads records (a JSON array, or newline-delimited JSON) and writes
the records admitted by the rule set as newline-delimited JSON on stdout.
The rule set comes from --rules (a JSON file holding either a smart folder
or a bare rule array) or --preset (a built-in example).`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringVar(&rulesFile, "rules", "", "rule set JSON file")
	filterCmd.Flags().StringVar(&presetName, "preset", "", "built-in preset name (see 'smartfolder presets')")
	filterCmd.Flags().StringVar(&recordsFile, "records", "-", "records file, '-' for stdin")
}

func runFilter(cmd *cobra.Command, args []string) error {
	logger := setupLogger(logLevel, logFormat)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ruleSet, err := loadRuleSet()
	if err != nil {
		return err
	}
	if err := rules.ValidateRuleSet(ruleSet, cfg.MaxRules, cfg.MaxPatternLength); err != nil {
		return fmt.Errorf("invalid rule set: %w", err)
	}

	records, err := loadRecords(recordsFile)
	if err != nil {
		return err
	}

	engine := rules.NewEngine(cfg.Development(), logger)
	matched := engine.Filter(records, ruleSet)

	out := json.NewEncoder(cmd.OutOrStdout())
	for _, record := range matched {
		if err := out.Encode(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	logger.Info("filter complete",
		"rules", len(ruleSet),
		"records", len(records),
		"matched", len(matched))
	return nil
}

// loadRuleSet resolves the rule source: exactly one of --rules and
// --preset must be given. A rules file may hold a smart folder object or a
// bare rule array.
func loadRuleSet() ([]types.Rule, error) {
	switch {
	case rulesFile != "" && presetName != "":
		return nil, fmt.Errorf("--rules and --preset are mutually exclusive")
	case presetName != "":
		ruleSet, ok := rules.Preset(presetName)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", presetName)
		}
		return ruleSet, nil
	case rulesFile != "":
		data, err := os.ReadFile(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules file: %w", err)
		}
		var folder types.SmartFolder
		if err := json.Unmarshal(data, &folder); err == nil && len(folder.Rules) > 0 {
			return folder.Rules, nil
		}
		var ruleSet []types.Rule
		if err := json.Unmarshal(data, &ruleSet); err != nil {
			return nil, fmt.Errorf("failed to parse rules file: %w", err)
		}
		return ruleSet, nil
	default:
		return nil, fmt.Errorf("--rules or --preset required")
	}
}

// loadRecords reads records from path ('-' for stdin) as either a JSON
// array or newline-delimited JSON objects.
func loadRecords(path string) ([]any, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open records file: %w", err)
		}
		defer f.Close()
		r = f
	}

	br := bufio.NewReader(r)
	first, err := peekByte(br)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	if first == '[' {
		var records []any
		if err := json.NewDecoder(br).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse records array: %w", err)
		}
		return records, nil
	}

	var records []any
	dec := json.NewDecoder(br)
	for {
		var record any
		if err := dec.Decode(&record); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to parse record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// peekByte returns the first non-whitespace byte without consuming input.
func peekByte(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}
