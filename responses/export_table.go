package responses

// ExportTable - the export job that was started
type ExportTable struct {
	JobID int64 `json:"jobId" yaml:"jobId"`
	// location of the file once the job completed
	FilePath string `json:"filePath" yaml:"filePath"`
}
