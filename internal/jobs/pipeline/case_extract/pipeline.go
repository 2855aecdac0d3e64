package case_extract

import (
	"fmt"

	jobrt "github.com/yungbote/juridica-backend/internal/jobs/runtime"
	"github.com/yungbote/juridica-backend/internal/services"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil || jc.Job == nil {
		return nil
	}
	req := services.ExtractRequest{
		PDFURL: jc.PayloadString("pdf_url"),
		CaseID: jc.PayloadString("case_id"),
	}
	if req.CaseID == "" {
		req.CaseID = jc.Job.CaseID
	}
	if req.PDFURL == "" {
		jc.Fail("validate", fmt.Errorf("missing pdf_url"))
		return nil
	}

	out, err := p.extractor.Extract(jc.Ctx, req)
	if err != nil {
		jc.Fail("extract", err)
		return nil
	}
	if out.Degraded() {
		p.log.Info("job finished with degraded extraction", "job_id", jc.Job.ID, "reason", out.Reason)
	}

	jc.Succeed(out.Extraction)
	return nil
}
