package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/patientreg/patientreg/internal/form"
	"github.com/patientreg/patientreg/pkg/client"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "registration-form",
		Short: "Terminal form for registering patients",
		Long:  `A terminal user interface for submitting patient registrations to the Patient Registration API.`,
		RunE:  runForm,
	}

	rootCmd.Flags().String("api-url", "", "Base URL of the registration API (default: $API_BASE_URL or http://localhost:8000)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runForm(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("api-url")
	if baseURL == "" {
		baseURL = os.Getenv("API_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	c := client.New(baseURL)
	m := form.New(c.RegisterPatient)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
