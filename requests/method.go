package requests

// Method - name of an api method, also the name of the request root element
type Method string

const (
	// MethodGetMailingTemplates list mailing templates
	MethodGetMailingTemplates Method = "GetMailingTemplates"
	// MethodDeleteRelationalTableData delete rows from a relational table
	MethodDeleteRelationalTableData Method = "DeleteRelationalTableData"
	// MethodInsertUpdateRelationalTable insert or update rows of a relational table
	MethodInsertUpdateRelationalTable Method = "InsertUpdateRelationalTable"
	// MethodExportTable start a relational table export job
	MethodExportTable Method = "ExportTable"
	// MethodGetJobStatus poll a background job
	MethodGetJobStatus Method = "GetJobStatus"
)
