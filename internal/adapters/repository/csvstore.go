package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/internal/domain/validation"
	"github.com/okian/teamup/pkg/logger"
	"github.com/okian/teamup/pkg/metrics"
)

const (
	kindParticipants = "participants"
	kindTeams        = "teams"
)

// CSVStore implements Store on local CSV files.
type CSVStore struct {
	logger logger.Logger
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore creates a CSV store.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateFile reports whether path is an existing regular file.
func (s *CSVStore) ValidateFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadParticipants loads participants from path. Columns are matched by
// header name; the PersonalityType column is ignored since the type is derived.
func (s *CSVStore) ReadParticipants(ctx context.Context, path string) ([]*model.Participant, error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "open")
		return nil, fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", ErrFileProcessing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrFileProcessing, err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []*model.Participant
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFileProcessing, line, err)
		}
		if blank(rec) {
			continue
		}

		p, err := parseParticipant(rec, cols)
		if err != nil {
			metrics.RecordCSVRowSkipped()
			s.logger.Warn(ctx, "skipping participant row",
				logger.String("file", path),
				logger.Int("line", line),
				logger.Error(err),
			)
			continue
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %w in %s", ErrFileProcessing, ErrNoValidParticipants, path)
	}

	metrics.RecordCSVRowsRead(kindParticipants, len(out))
	s.logger.Debug(ctx, "participants loaded", logger.String("file", path), logger.Int("count", len(out)))
	return out, nil
}

// columnIndex maps required participant columns to their position.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range ParticipantHeader[:len(ParticipantHeader)-1] {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrFileProcessing, name)
		}
	}
	return cols, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseParticipant(rec []string, cols map[string]int) (*model.Participant, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	id := field("ID")
	if id == "" {
		return nil, errors.New("missing id")
	}

	skill, err := strconv.Atoi(field("SkillLevel"))
	if err != nil {
		return nil, fmt.Errorf("skill level %q: %w", field("SkillLevel"), err)
	}
	score, err := strconv.Atoi(field("PersonalityScore"))
	if err != nil {
		return nil, fmt.Errorf("personality score %q: %w", field("PersonalityScore"), err)
	}
	role, err := validation.Role(field("PreferredRole"))
	if err != nil {
		return nil, err
	}

	p := &model.Participant{
		ID:               id,
		Name:             field("Name"),
		Email:            field("Email"),
		PersonalityScore: score,
		PreferredGame:    field("PreferredGame"),
		PreferredRole:    role,
		SkillLevel:       skill,
	}
	if err := validation.Participant(p); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteParticipants writes participants with the fixed participant header.
func (s *CSVStore) WriteParticipants(ctx context.Context, path string, participants []*model.Participant) error {
	rows := make([][]string, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, participantRow(p))
	}
	if err := writeCSV(path, ParticipantHeader, rows); err != nil {
		metrics.RecordErrorByComponent("repository", "write")
		return err
	}
	metrics.RecordCSVRowsWritten(kindParticipants, len(rows))
	s.logger.Debug(ctx, "participants saved", logger.String("file", path), logger.Int("count", len(rows)))
	return nil
}

// WriteTeams writes one row per member, grouped by team in team order.
func (s *CSVStore) WriteTeams(ctx context.Context, path string, teams []*model.Team) error {
	var rows [][]string
	for _, t := range teams {
		for _, m := range t.Members() {
			rows = append(rows, append([]string{t.ID(), t.Name()}, participantRow(m)...))
		}
	}
	if err := writeCSV(path, TeamHeader, rows); err != nil {
		metrics.RecordErrorByComponent("repository", "write")
		return err
	}
	metrics.RecordCSVRowsWritten(kindTeams, len(rows))
	s.logger.Info(ctx, "teams exported",
		logger.String("file", path),
		logger.Int("teams", len(teams)),
		logger.Int("rows", len(rows)),
	)
	return nil
}

func participantRow(p *model.Participant) []string {
	return []string{
		p.ID,
		p.Name,
		p.Email,
		p.PreferredGame,
		strconv.Itoa(p.SkillLevel),
		string(p.PreferredRole),
		strconv.Itoa(p.PersonalityScore),
		p.PersonalityType().String(),
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}
	return nil
}
