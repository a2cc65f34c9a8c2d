// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paperdock/paperdock/pkg/types"
)

// AskQuestion attaches a reader question to a research record.
func (s *Store) AskQuestion(ctx context.Context, researchID, userName, content string) (*types.QAQuestion, error) {
	if _, err := s.Get(ctx, researchID); err != nil {
		return nil, err
	}

	q := &types.QAQuestion{
		ID:         uuid.NewString(),
		ResearchID: researchID,
		UserName:   userName,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (id, research_id, user_name, content, upvotes, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		q.ID, q.ResearchID, q.UserName, q.Content, formatTime(q.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("inserting question: %w", err)
	}
	return q, nil
}

// AnswerQuestion attaches an answer to an existing question.
func (s *Store) AnswerQuestion(ctx context.Context, questionID, userName, content string) (*types.QAAnswer, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM questions WHERE id = ?`, questionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking question %s: %w", questionID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("question %s not found", questionID)
	}

	a := &types.QAAnswer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		UserName:   userName,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO answers (id, question_id, user_name, content, upvotes, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		a.ID, a.QuestionID, a.UserName, a.Content, formatTime(a.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("inserting answer: %w", err)
	}
	return a, nil
}

// Questions lists a record's questions with their answers, most upvoted
// first. Answers are ordered the same way within each question.
func (s *Store) Questions(ctx context.Context, researchID string) ([]types.QAQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, research_id, user_name, content, upvotes, created_at
		 FROM questions WHERE research_id = ?
		 ORDER BY upvotes DESC, created_at ASC`, researchID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var questions []types.QAQuestion
	for rows.Next() {
		var (
			q       types.QAQuestion
			created string
		)
		if err := rows.Scan(&q.ID, &q.ResearchID, &q.UserName, &q.Content, &q.Upvotes, &created); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		if q.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing question timestamp: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		answers, err := s.answers(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Answers = answers
	}
	return questions, nil
}

func (s *Store) answers(ctx context.Context, questionID string) ([]types.QAAnswer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_id, user_name, content, upvotes, created_at
		 FROM answers WHERE question_id = ?
		 ORDER BY upvotes DESC, created_at ASC`, questionID)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}
	defer rows.Close()

	var answers []types.QAAnswer
	for rows.Next() {
		var (
			a       types.QAAnswer
			created string
		)
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.UserName, &a.Content, &a.Upvotes, &created); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing answer timestamp: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// UpvoteQuestion increments a question's upvote counter.
func (s *Store) UpvoteQuestion(ctx context.Context, id string) error {
	return s.upvote(ctx, "questions", id)
}

// UpvoteAnswer increments an answer's upvote counter.
func (s *Store) UpvoteAnswer(ctx context.Context, id string) error {
	return s.upvote(ctx, "answers", id)
}

func (s *Store) upvote(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE `+table+` SET upvotes = upvotes + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("upvoting %s entry %s: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s entry %s not found", table, id)
	}
	return nil
}
