package case_extract

import (
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/services"
)

type Pipeline struct {
	log       *logger.Logger
	extractor services.ExtractionService
}

func New(baseLog *logger.Logger, extractor services.ExtractionService) *Pipeline {
	return &Pipeline{
		log:       baseLog.With("job", services.JobTypeCaseExtract),
		extractor: extractor,
	}
}

func (p *Pipeline) Type() string { return services.JobTypeCaseExtract }
