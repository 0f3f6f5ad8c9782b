package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, subcmd := range cmd.Commands() {
		if subcmd.Name() == name {
			return subcmd
		}
	}
	return nil
}

func TestIncomeCmdSubcommands(t *testing.T) {
	cmd := incomeCmd()
	for _, name := range []string{"list", "add", "update", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestAddIncomeCmdFlags(t *testing.T) {
	cmd := addIncomeCmd()

	flag := cmd.Flag("amount")
	assert.NotNil(t, flag, "amount flag should exist")
	assert.Equal(t, "a", flag.Shorthand)
}

func TestExpenseCmdSubcommands(t *testing.T) {
	cmd := expenseCmd()
	for _, name := range []string{"list", "add", "update", "toggle", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestLoanCmdSubcommands(t *testing.T) {
	cmd := loanCmd()
	for _, name := range []string{"list", "add", "pay", "toggle", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestAddLoanCmdFlags(t *testing.T) {
	cmd := addLoanCmd()

	assert.NotNil(t, cmd.Flag("amount"), "amount flag should exist")

	lineFlag := cmd.Flag("line")
	assert.NotNil(t, lineFlag, "line flag should exist")
	assert.Contains(t, lineFlag.Usage, "udget line")
}

func TestLineCmdSubcommands(t *testing.T) {
	cmd := lineCmd()
	for _, name := range []string{"list", "add", "update", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestDailyCmdSubcommands(t *testing.T) {
	cmd := dailyCmd()
	for _, name := range []string{"list", "add", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestListDailyCmdFlags(t *testing.T) {
	cmd := listDailyCmd()

	flag := cmd.Flag("line")
	assert.NotNil(t, flag, "line flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestBackupCmdSubcommands(t *testing.T) {
	cmd := backupCmd()
	for _, name := range []string{"create", "list", "restore", "delete", "clean"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestRestoreBackupCmdFlags(t *testing.T) {
	cmd := restoreBackupCmd()

	flag := cmd.Flag("force")
	assert.NotNil(t, flag, "force flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestExportCmdFlags(t *testing.T) {
	cmd := exportCmd()

	flag := cmd.Flag("output")
	assert.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
}

func TestImportCmdFlags(t *testing.T) {
	cmd := importCmd()

	flag := cmd.Flag("force")
	assert.NotNil(t, flag, "force flag should exist")
}

func TestResetCmdFlags(t *testing.T) {
	cmd := resetCmd()

	flag := cmd.Flag("force")
	assert.NotNil(t, flag, "force flag should exist")
	assert.Equal(t, "f", flag.Shorthand)
}

func TestCategoryCmdSubcommands(t *testing.T) {
	cmd := categoryCmd()
	for _, name := range []string{"list", "add", "rename", "style", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestFutureCmdSubcommands(t *testing.T) {
	cmd := futureCmd()
	for _, name := range []string{"list", "add", "pay", "toggle", "delete"} {
		assert.NotNil(t, findSubcommand(cmd, name), "%s subcommand should exist", name)
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.5 KB", formatFileSize(1536))
	assert.Equal(t, "2.0 MB", formatFileSize(2*1024*1024))
}
