package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitimporter/internal/importer"
)

const (
	stageMessageTemplateConstant      = "%s%s"
	stageFailedTemplateConstant       = "%s failed: %s"
	stageDetailSuffixTemplateConstant = ": %s"
	unknownFailureMessageConstant     = "unknown error"
	unknownStageLabelConstant         = "Stage %s"
	emptyStringConstant               = ""
)

type stageLabels struct {
	started   string
	completed string
	failed    string
}

var stageLabelMapping = map[importer.Stage]stageLabels{
	importer.StageInit:             {started: "Preparing import of", completed: "Import target", failed: "Preparation"},
	importer.StageValidateToken:    {started: "Validating token on", completed: "Authenticated as", failed: "Token validation"},
	importer.StageCheckExists:      {started: "Checking whether repository exists", completed: "Checked repository", failed: "Repository lookup"},
	importer.StageCreateRepository: {started: "Creating repository", completed: "Repository ready", failed: "Repository creation"},
	importer.StageConfirmOverwrite: {started: "Repository already exists", completed: "Overwrite confirmed", failed: "Overwrite confirmation"},
	importer.StageClone:            {started: "Mirroring", completed: "Mirrored into", failed: "Mirror clone"},
	importer.StagePush:             {started: "Pushing all branches and tags to", completed: "Pushed to", failed: "Mirror push"},
	importer.StageSetDefaultBranch: {started: "Setting default branch to", completed: "Default branch is", failed: "Default branch update"},
	importer.StageVerify:           {started: "Verifying references on", completed: "Verified references on", failed: "Verification"},
	importer.StageCleanup:          {started: "Removing temporary directory", completed: "Removed temporary directory", failed: "Cleanup"},
	importer.StageDone:             {started: "Finishing", completed: "Import complete", failed: "Import"},
	importer.StageFailed:           {started: "Import", completed: "Import", failed: "Import"},
}

// StageMessageFormatter builds human-readable messages for import stage events.
type StageMessageFormatter struct{}

// BuildStartedMessage describes a stage about to run.
func (formatter StageMessageFormatter) BuildStartedMessage(stage importer.Stage, detail string) string {
	return fmt.Sprintf(stageMessageTemplateConstant, formatter.labels(stage).started, formatter.detailSuffix(detail))
}

// BuildCompletedMessage describes a finished stage.
func (formatter StageMessageFormatter) BuildCompletedMessage(stage importer.Stage, detail string) string {
	return fmt.Sprintf(stageMessageTemplateConstant, formatter.labels(stage).completed, formatter.detailSuffix(detail))
}

// BuildFailedMessage describes a failed stage.
func (formatter StageMessageFormatter) BuildFailedMessage(stage importer.Stage, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(stageFailedTemplateConstant, formatter.labels(stage).failed, failureMessage)
}

func (formatter StageMessageFormatter) labels(stage importer.Stage) stageLabels {
	if labels, known := stageLabelMapping[stage]; known {
		return labels
	}
	fallback := fmt.Sprintf(unknownStageLabelConstant, stage)
	return stageLabels{started: fallback, completed: fallback, failed: fallback}
}

func (formatter StageMessageFormatter) detailSuffix(detail string) string {
	trimmedDetail := strings.TrimSpace(detail)
	if len(trimmedDetail) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(stageDetailSuffixTemplateConstant, trimmedDetail)
}

// ConsoleStageReporter renders import stage events through a zap logger configured for human-readable output.
type ConsoleStageReporter struct {
	logger    *zap.Logger
	formatter StageMessageFormatter
}

// NewConsoleStageReporter constructs a reporter backed by the provided zap logger.
func NewConsoleStageReporter(logger *zap.Logger) *ConsoleStageReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleStageReporter{logger: logger, formatter: StageMessageFormatter{}}
}

// StageStarted implements importer.StageObserver.
func (reporter *ConsoleStageReporter) StageStarted(stage importer.Stage, detail string) {
	if reporter == nil {
		return
	}
	reporter.logger.Info(reporter.formatter.BuildStartedMessage(stage, detail))
}

// StageCompleted implements importer.StageObserver.
func (reporter *ConsoleStageReporter) StageCompleted(stage importer.Stage, detail string) {
	if reporter == nil {
		return
	}
	reporter.logger.Info(reporter.formatter.BuildCompletedMessage(stage, detail))
}

// StageFailed implements importer.StageObserver.
func (reporter *ConsoleStageReporter) StageFailed(stage importer.Stage, failure error) {
	if reporter == nil {
		return
	}
	reporter.logger.Error(reporter.formatter.BuildFailedMessage(stage, failure))
}
