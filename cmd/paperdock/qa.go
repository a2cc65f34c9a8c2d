// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var qaCmd = &cobra.Command{
	Use:   "qa",
	Short: "Reader questions and answers on records",
	Long: `QA manages the question-and-answer thread attached to each record.
Readers ask questions, anyone can answer, and upvotes move the most
useful entries to the top.`,
}

var qaAskCmd = &cobra.Command{
	Use:   "ask <record-id> <question...>",
	Short: "Ask a question about a record",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		user, _ := cmd.Flags().GetString("user")
		q, err := store.AskQuestion(context.Background(), args[0], user, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("question: %s\n", q.ID)
		return nil
	},
}

var qaAnswerCmd = &cobra.Command{
	Use:   "answer <question-id> <answer...>",
	Short: "Answer a question",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		user, _ := cmd.Flags().GetString("user")
		a, err := store.AnswerQuestion(context.Background(), args[0], user, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("answer: %s\n", a.ID)
		return nil
	},
}

var qaListCmd = &cobra.Command{
	Use:   "list <record-id>",
	Short: "List a record's questions and answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		questions, err := store.Questions(context.Background(), args[0])
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			fmt.Println("No questions yet.")
			return nil
		}
		for _, q := range questions {
			fmt.Printf("[%s] %s (%s, %d upvotes)\n", q.ID, q.Content, q.UserName, q.Upvotes)
			for _, a := range q.Answers {
				fmt.Printf("  [%s] %s (%s, %d upvotes)\n", a.ID, a.Content, a.UserName, a.Upvotes)
			}
		}
		return nil
	},
}

var qaUpvoteCmd = &cobra.Command{
	Use:   "upvote <id>",
	Short: "Upvote a question, or an answer with --answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		answer, _ := cmd.Flags().GetBool("answer")
		if answer {
			return store.UpvoteAnswer(context.Background(), args[0])
		}
		return store.UpvoteQuestion(context.Background(), args[0])
	},
}

func init() {
	qaAskCmd.Flags().String("user", "anonymous", "name to record with the question")
	qaAnswerCmd.Flags().String("user", "anonymous", "name to record with the answer")
	qaUpvoteCmd.Flags().Bool("answer", false, "the ID names an answer, not a question")

	qaCmd.AddCommand(qaAskCmd)
	qaCmd.AddCommand(qaAnswerCmd)
	qaCmd.AddCommand(qaListCmd)
	qaCmd.AddCommand(qaUpvoteCmd)

	rootCmd.AddCommand(qaCmd)
}
