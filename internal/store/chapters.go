package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/open-cli-collective/novel-cli/pkg/novel"
)

// ChapterRecord describes a stored chapter.
type ChapterRecord struct {
	ID          string    `json:"id"`
	Novel       string    `json:"novel"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	ContentHash string    `json:"content_hash"`
	Paragraphs  int       `json:"paragraphs"`
	Elements    int       `json:"elements"`
	CreatedAt   time.Time `json:"created_at"`
}

// ElementRecord is the stored metadata of one element.
type ElementRecord struct {
	Paragraph int        `json:"paragraph"`
	Position  int        `json:"position"`
	Kind      novel.Kind `json:"kind"`
	Sentences int        `json:"sentences"`
	Tokens    int        `json:"tokens"`
	Speaker   string     `json:"speaker,omitempty"`
	Addressee string     `json:"addressee,omitempty"`
}

// ContentHash returns the hex BLAKE3 digest of the chapter's raw tokens, one
// line per paragraph.
func ContentHash(ch *novel.Chapter) string {
	sum := blake3.Sum256([]byte(strings.Join(paragraphLines(ch), "\n")))
	return hex.EncodeToString(sum[:])
}

func paragraphLines(ch *novel.Chapter) []string {
	paragraphs := ch.Paragraphs()
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = append(lines, joinTokens(p.Tokens()))
	}
	return lines
}

func joinTokens(tokens []novel.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func elementRecord(paragraph, position int, el novel.Element) ElementRecord {
	rec := ElementRecord{
		Paragraph: paragraph,
		Position:  position,
		Kind:      el.Kind(),
		Sentences: len(el.Sentences()),
		Tokens:    novel.TokenCount(el),
	}
	switch v := el.(type) {
	case *novel.Dialog:
		rec.Speaker, rec.Addressee = v.From, v.To
	case *novel.Thought:
		rec.Speaker = v.From
	}
	return rec
}

// SaveChapter stores ch under novelName. A chapter already stored with the
// same novel and number is replaced and keeps its id.
func (s *Store) SaveChapter(ctx context.Context, novelName string, ch *novel.Chapter, source string) (ChapterRecord, error) {
	if err := s.ready(ctx); err != nil {
		return ChapterRecord{}, err
	}
	novelName = strings.TrimSpace(novelName)
	if novelName == "" {
		return ChapterRecord{}, fmt.Errorf("novel name is required")
	}
	if ch == nil {
		return ChapterRecord{}, fmt.Errorf("chapter is required")
	}
	if ch.Number <= 0 {
		return ChapterRecord{}, fmt.Errorf("chapter number must be greater than zero")
	}

	paragraphs := ch.Paragraphs()
	rec := ChapterRecord{
		Novel:       novelName,
		Number:      ch.Number,
		Title:       strings.TrimSpace(ch.Title),
		Source:      source,
		ContentHash: ContentHash(ch),
		Paragraphs:  len(paragraphs),
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return ChapterRecord{}, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	err = tx.QueryRowContext(ctx,
		`SELECT id FROM chapters WHERE novel = ? AND number = ?`,
		rec.Novel, rec.Number,
	).Scan(&rec.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		rec.ID = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chapters (id, novel, number, title, source, content_hash, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Novel, rec.Number, rec.Title, rec.Source, rec.ContentHash, toMillis(rec.CreatedAt),
		); err != nil {
			return ChapterRecord{}, fmt.Errorf("insert chapter: %w", err)
		}
	case err != nil:
		return ChapterRecord{}, fmt.Errorf("find chapter: %w", err)
	default:
		if err := deleteChapterContent(ctx, tx, rec.ID); err != nil {
			return ChapterRecord{}, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE chapters SET title = ?, source = ?, content_hash = ?, created_at = ? WHERE id = ?`,
			rec.Title, rec.Source, rec.ContentHash, toMillis(rec.CreatedAt), rec.ID,
		); err != nil {
			return ChapterRecord{}, fmt.Errorf("update chapter: %w", err)
		}
	}

	for i, p := range paragraphs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO paragraphs (chapter_id, idx, tokens) VALUES (?, ?, ?)`,
			rec.ID, i, joinTokens(p.Tokens()),
		); err != nil {
			return ChapterRecord{}, fmt.Errorf("insert paragraph %d: %w", i, err)
		}
		for j, el := range p.Elements() {
			er := elementRecord(i, j, el)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO elements (chapter_id, paragraph_idx, position, kind, sentence_count, token_count, speaker, addressee)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.ID, er.Paragraph, er.Position, string(er.Kind), er.Sentences, er.Tokens, er.Speaker, er.Addressee,
			); err != nil {
				return ChapterRecord{}, fmt.Errorf("insert element %d/%d: %w", i, j, err)
			}
			rec.Elements++
		}
	}

	if err := tx.Commit(); err != nil {
		return ChapterRecord{}, fmt.Errorf("commit chapter: %w", err)
	}
	return rec, nil
}

func deleteChapterContent(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE chapter_id = ?`, id); err != nil {
		return fmt.Errorf("delete elements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM paragraphs WHERE chapter_id = ?`, id); err != nil {
		return fmt.Errorf("delete paragraphs: %w", err)
	}
	return nil
}

const chapterColumns = `c.id, c.novel, c.number, c.title, c.source, c.content_hash, c.created_at,
       (SELECT COUNT(*) FROM paragraphs p WHERE p.chapter_id = c.id),
       (SELECT COUNT(*) FROM elements e WHERE e.chapter_id = c.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChapter(row rowScanner) (ChapterRecord, error) {
	var rec ChapterRecord
	var createdAt int64
	if err := row.Scan(
		&rec.ID,
		&rec.Novel,
		&rec.Number,
		&rec.Title,
		&rec.Source,
		&rec.ContentHash,
		&createdAt,
		&rec.Paragraphs,
		&rec.Elements,
	); err != nil {
		return ChapterRecord{}, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	return rec, nil
}

// ListChapters returns the stored chapters of novelName ordered by number, or
// of every novel when novelName is empty.
func (s *Store) ListChapters(ctx context.Context, novelName string) ([]ChapterRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	novelName = strings.TrimSpace(novelName)

	query := `SELECT ` + chapterColumns + ` FROM chapters c`
	var args []any
	if novelName != "" {
		query += ` WHERE c.novel = ?`
		args = append(args, novelName)
	}
	query += ` ORDER BY c.novel ASC, c.number ASC`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []ChapterRecord{}
	for rows.Next() {
		rec, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}
	return chapters, nil
}

// GetChapter returns one chapter by id.
func (s *Store) GetChapter(ctx context.Context, id string) (ChapterRecord, error) {
	if err := s.ready(ctx); err != nil {
		return ChapterRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ChapterRecord{}, fmt.Errorf("chapter id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+chapterColumns+` FROM chapters c WHERE c.id = ?`, id)
	rec, err := scanChapter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ChapterRecord{}, chapterNotFound(id)
		}
		return ChapterRecord{}, fmt.Errorf("get chapter: %w", err)
	}
	return rec, nil
}

// FindChapter returns the chapter stored under novelName and number.
func (s *Store) FindChapter(ctx context.Context, novelName string, number int) (ChapterRecord, error) {
	if err := s.ready(ctx); err != nil {
		return ChapterRecord{}, err
	}
	novelName = strings.TrimSpace(novelName)
	if novelName == "" {
		return ChapterRecord{}, fmt.Errorf("novel name is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+chapterColumns+` FROM chapters c WHERE c.novel = ? AND c.number = ?`,
		novelName, number,
	)
	rec, err := scanChapter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ChapterRecord{}, chapterNotFound(fmt.Sprintf("%s #%d", novelName, number))
		}
		return ChapterRecord{}, fmt.Errorf("find chapter: %w", err)
	}
	return rec, nil
}

// LoadTokens returns the raw tokens of every paragraph of a chapter.
func (s *Store) LoadTokens(ctx context.Context, id string) ([][]novel.Token, error) {
	if _, err := s.GetChapter(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT tokens FROM paragraphs WHERE chapter_id = ? ORDER BY idx ASC`,
		strings.TrimSpace(id),
	)
	if err != nil {
		return nil, fmt.Errorf("load paragraphs: %w", err)
	}
	defer rows.Close()

	paragraphs := [][]novel.Token{}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan paragraph: %w", err)
		}
		paragraphs = append(paragraphs, novel.Tokenize(line))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paragraphs: %w", err)
	}
	return paragraphs, nil
}

// LoadChapter rebuilds a chapter by pushing its stored tokens through reg.
// A nil registry selects novel.Default().
func (s *Store) LoadChapter(ctx context.Context, id string, reg *novel.Registry) (*novel.Chapter, error) {
	rec, err := s.GetChapter(ctx, id)
	if err != nil {
		return nil, err
	}
	paragraphs, err := s.LoadTokens(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	ch := novel.NewChapter(rec.Number, rec.Title, reg).
		WithNovel(novel.NovelContext{Title: rec.Novel})
	for _, tokens := range paragraphs {
		ch.BreakParagraph()
		for _, t := range tokens {
			ch.PushToken(t.String())
		}
	}
	return ch, nil
}

// ListElements returns the element metadata of a chapter in reading order.
func (s *Store) ListElements(ctx context.Context, id string) ([]ElementRecord, error) {
	if _, err := s.GetChapter(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT paragraph_idx, position, kind, sentence_count, token_count, speaker, addressee
		   FROM elements
		  WHERE chapter_id = ?
		  ORDER BY paragraph_idx ASC, position ASC`,
		strings.TrimSpace(id),
	)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	defer rows.Close()

	elements := []ElementRecord{}
	for rows.Next() {
		var rec ElementRecord
		var kind string
		if err := rows.Scan(
			&rec.Paragraph,
			&rec.Position,
			&kind,
			&rec.Sentences,
			&rec.Tokens,
			&rec.Speaker,
			&rec.Addressee,
		); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		rec.Kind = novel.Kind(kind)
		elements = append(elements, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elements: %w", err)
	}
	return elements, nil
}

// DeleteChapter removes a chapter with its paragraphs and elements.
func (s *Store) DeleteChapter(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("chapter id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteChapterContent(ctx, tx, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	if n == 0 {
		return chapterNotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// CountChapters returns the number of stored chapters across all novels.
func (s *Store) CountChapters(ctx context.Context) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM chapters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return n, nil
}
