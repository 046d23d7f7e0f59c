package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/models"
	"github.com/noah-isme/desk-portal-api/pkg/export"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

// Export formats supported by the inventory download.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type boardProvider interface {
	Board(ctx context.Context, sess *models.Session) (*dto.DeskBoardResponse, error)
}

// ExportFile is a rendered inventory download.
type ExportFile struct {
	Name        string
	ContentType string
	Payload     []byte
}

// ExportService renders the reconciled desk board as a downloadable
// CSV or PDF file.
type ExportService struct {
	board  boardProvider
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs the service.
func NewExportService(board boardProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		board:  board,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		now:    time.Now,
	}
}

var boardHeaders = []string{"Desk", "Floor", "Department", "Status", "Occupant", "Employee Code", "Last Changed"}

func boardDataset(views []models.DeskView) export.Dataset {
	rows := make([]map[string]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, map[string]string{
			"Desk":          string(v.DeskNumber),
			"Floor":         strconv.Itoa(v.Floor),
			"Department":    v.Department,
			"Status":        v.Status,
			"Occupant":      v.Occupant,
			"Employee Code": v.EmployeeCode,
			"Last Changed":  v.LastChanged,
		})
	}
	return export.Dataset{Headers: boardHeaders, Rows: rows}
}

// BoardExport renders the current desk board in the requested format.
func (s *ExportService) BoardExport(ctx context.Context, sess *models.Session, format string) (*ExportFile, error) {
	board, err := s.board.Board(ctx, sess)
	if err != nil {
		return nil, err
	}

	dataset := boardDataset(board.Desks)
	stamp := s.now().Format("2006-01-02")

	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, fmt.Errorf("render inventory csv: %w", err)
		}
		return &ExportFile{
			Name:        "desk-inventory-" + stamp + ".csv",
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(dataset, "Desk Inventory "+stamp)
		if err != nil {
			return nil, fmt.Errorf("render inventory pdf: %w", err)
		}
		return &ExportFile{
			Name:        "desk-inventory-" + stamp + ".pdf",
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}
}
