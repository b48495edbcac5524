package cli

import (
	"os"
	"strconv"

	"edp-shifts/internal/shift"

	"github.com/spf13/cobra"
)

type shiftRow struct {
	ID          uint   `yaml:"id"`
	Date        string `yaml:"date"`
	Branch      string `yaml:"branch"`
	StaffName   string `yaml:"staff_name"`
	StaffNumber string `yaml:"staff_number"`
	MobilePhone string `yaml:"mobile_phone"`
	ShiftTiming string `yaml:"shift_timing"`
	Timestamp   string `yaml:"timestamp"`
}

func newShiftCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Inspect and export shift records",
	}
	cmd.AddCommand(newShiftListCommand(e), newShiftExportCommand(e))
	return cmd
}

func newShiftListCommand(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every shift record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			shifts, err := e.shifts.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]shiftRow, 0, len(shifts))
			cells := make([][]string, 0, len(shifts))
			for _, sh := range shifts {
				r := shiftRow{
					ID:          sh.ID,
					Date:        shift.FormatDisplayDate(sh.Date),
					Branch:      sh.Branch,
					StaffName:   sh.StaffName,
					StaffNumber: sh.StaffNumber,
					MobilePhone: sh.MobilePhone,
					ShiftTiming: string(sh.ShiftTiming),
					Timestamp:   sh.Timestamp.Format(shift.TimestampLayout),
				}
				rows = append(rows, r)
				cells = append(cells, []string{
					strconv.FormatUint(uint64(r.ID), 10), r.Date, r.Branch,
					r.StaffName, r.StaffNumber, r.MobilePhone, r.ShiftTiming, r.Timestamp,
				})
			}
			return render(cmd.OutOrStdout(), output, rows,
				[]string{"ID", "DATE", "BRANCH", "STAFF NAME", "STAFF NO", "MOBILE", "TIMING", "TIMESTAMP"}, cells)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table or yaml")
	return cmd
}

func newShiftExportCommand(e *env) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every shift record to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := e.shifts.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := shift.WriteXLSX(f, shifts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "exported %d shift(s) to %s\n", len(shifts), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "shifts.xlsx", "Destination file")
	return cmd
}
