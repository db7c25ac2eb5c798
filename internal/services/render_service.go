package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"canvasChat/internal/errs"
	"canvasChat/internal/models"
)

// RenderService implements interfaces.SnapshotRenderer against the external
// render process: it posts the shape list (creation order, each with its
// annotation number) and stores the returned PNG, badges composited, in the
// snapshot bucket.
type RenderService struct {
	endpoint    string
	httpClient  *http.Client
	fileManager *FileManagerService
}

type renderRequest struct {
	BoardID uint          `json:"board_id"`
	Shapes  []renderShape `json:"shapes"`
}

type renderShape struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Attributes       models.Attributes `json:"attributes"`
	AnnotationNumber int               `json:"annotation_number"`
}

func NewRenderService(endpoint string, fileManager *FileManagerService) *RenderService {
	return &RenderService{
		endpoint:    endpoint,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		fileManager: fileManager,
	}
}

func (rs *RenderService) RenderAnnotated(ctx context.Context, boardID uint, shapes []models.Shape) (string, error) {
	request := renderRequest{BoardID: boardID, Shapes: make([]renderShape, 0, len(shapes))}
	for _, shape := range shapes {
		request.Shapes = append(request.Shapes, renderShape{
			ID:               shape.ID,
			Type:             shape.Type,
			Attributes:       shape.Attributes,
			AnnotationNumber: shape.AnnotationNumber,
		})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rs.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrSnapshotRenderFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: render service returned %v", errs.ErrSnapshotRenderFailed, resp.StatusCode)
	}

	fileName := fmt.Sprintf("board-%d-%d.png", boardID, time.Now().UnixNano())
	return rs.fileManager.UploadSnapshotImage(fileName, resp.Body, resp.ContentLength, "image/png")
}
