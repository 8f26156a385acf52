package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/ejezie/Enact-Pricing/internal/api/client"
)

func chatCommand() *cobra.Command {
	var term string

	chatCmd := &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask questions about an analyzed market",
		Long: "Sends questions to a running enact server, answered from the\n" +
			"latest analysis for the term. With no question argument an\n" +
			"interactive prompt reads questions from stdin until EOF.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiclient.New(viper.GetString("server"))
			if len(args) == 1 {
				return askOnce(cmd, c, term, args[0])
			}
			return chatLoop(cmd, c, term)
		},
	}
	chatCmd.Flags().StringVar(&term, "term", "", "previously analyzed search term")
	cobra.CheckErr(chatCmd.MarkFlagRequired("term"))

	return chatCmd
}

func askOnce(cmd *cobra.Command, c *apiclient.Client, term, question string) error {
	resp, err := c.Chat(cmd.Context(), term, question)
	if err != nil {
		return fmt.Errorf("asking question: %w", err)
	}

	if jsonOutput() {
		return printJSON(resp)
	}
	fmt.Println(resp.Answer)
	return nil
}

func chatLoop(cmd *cobra.Command, c *apiclient.Client, term string) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		if err := askOnce(cmd, c, term, question); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}
