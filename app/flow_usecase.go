package app

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/jsflow/domain"
	"github.com/ludo-technologies/jsflow/service"
)

// FlowUseCase orchestrates a flow-graph run: collect files, build graphs,
// format the result.
type FlowUseCase struct {
	service    domain.FlowService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewFlowUseCase creates a flow use case with the given collaborators.
func NewFlowUseCase(svc domain.FlowService, formatter domain.OutputFormatter) *FlowUseCase {
	return &FlowUseCase{
		service:    svc,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// NewDefaultFlowUseCase wires the default service stack. showProgress
// controls whether multi-file runs render a progress bar.
func NewDefaultFlowUseCase(showProgress bool) *FlowUseCase {
	progress := service.NewProgressManager(showProgress)
	return NewFlowUseCase(service.NewFlowService(progress), service.NewOutputFormatter())
}

// Execute runs the use case and writes the formatted response to the
// request's writer.
func (uc *FlowUseCase) Execute(req *domain.FlowRequest) (*domain.FlowResponse, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewFileError("no input paths specified", nil)
	}

	files, err := uc.fileHelper.CollectJSFiles(
		req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns, req.RespectGitignore)
	if err != nil {
		return nil, domain.NewFileError("failed to collect input files", err)
	}
	if len(files) == 0 {
		return nil, domain.NewFileError("no JavaScript files found", nil)
	}

	response, err := uc.service.Analyze(req, files)
	if err != nil {
		return nil, err
	}

	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}
	if err := uc.formatter.Write(response, req.OutputFormat, writer); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return response, nil
}
