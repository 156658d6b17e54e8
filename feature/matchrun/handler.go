package matchrun

import (
	"track-matcher/core/dataset"
	"track-matcher/core/logger"
	"track-matcher/core/matching"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for matching uploaded curation files against
// the library the server was started with.
type Handler struct {
	service *Service
	index   *matching.Index
	library string
}

// NewHandler creates a new HTTP handler bound to a prebuilt library index.
func NewHandler(service *Service, index *matching.Index, library string) *Handler {
	return &Handler{service: service, index: index, library: library}
}

// RegisterRoutes registers the matchrun routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/match")
	group.Get("/library", h.HandleLibraryInfo)
	group.Post("/", h.HandleMatch)
}

// matchResponse is the JSON shape of a successful match call.
type matchResponse struct {
	Library   string           `json:"library"`
	Curation  string           `json:"curation"`
	Summary   matching.Summary `json:"summary"`
	Matched   []dataset.Row    `json:"matched"`
	Unmatched []dataset.Row    `json:"unmatched"`
}

// HandleLibraryInfo reports the loaded library and its size.
func (h *Handler) HandleLibraryInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"library": h.library,
		"records": h.index.Size(),
	})
}

// HandleMatch matches an uploaded curation CSV (multipart field "file")
// against the library index and returns the full result as JSON.
func (h *Handler) HandleMatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart field 'file' is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read uploaded file",
		})
	}
	defer file.Close()

	ds, err := dataset.Read(dataset.BaseName(fileHeader.Filename), file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	rows, _, err := h.service.Records(ds)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	engine := matching.NewEngine(h.service.cfg, l)
	res, err := engine.Run(c.Context(), rows, h.index, nil)
	if err != nil {
		l.Error("Match run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Upload matched",
		zap.String("curation", ds.Name),
		zap.Int("total", res.Summary.Total),
		zap.Int("matched", res.Summary.Matched),
	)

	matched, unmatched := BuildOutputs(ds.Name, res)
	return c.JSON(matchResponse{
		Library:   h.library,
		Curation:  ds.Name,
		Summary:   res.Summary,
		Matched:   matched.Rows,
		Unmatched: unmatched.Rows,
	})
}
