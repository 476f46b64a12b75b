package command

import (
	"context"

	"github.com/beevik/etree"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"go.uber.org/zap"
)

type GetMailingTemplates struct {
	command
}

func NewGetMailingTemplates(l *zap.Logger, transport Transport) *GetMailingTemplates {
	return &GetMailingTemplates{
		command: newCommand(l, requests.MethodGetMailingTemplates, transport),
	}
}

func (c *GetMailingTemplates) Execute(ctx context.Context, o *requests.GetMailingTemplates) (*responses.GetMailingTemplates, error) {
	b, err := c.Build(o)
	if err != nil {
		return nil, err
	}
	result, err := c.submit(ctx, b)
	if err != nil {
		return nil, err
	}
	return c.Map(result)
}

// Build validates o and renders the request document
func (c *GetMailingTemplates) Build(o *requests.GetMailingTemplates) (*xmlapi.Builder, error) {
	if o == nil {
		return nil, c.nilOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b, root := c.newBuilder()
	b.AddText(root, "VISIBILITY", o.Visibility.Value())
	if o.LastModifiedStartDate != nil {
		b.AddTime(root, "LAST_MODIFIED_START_DATE", *o.LastModifiedStartDate)
	}
	if o.LastModifiedEndDate != nil {
		b.AddTime(root, "LAST_MODIFIED_END_DATE", *o.LastModifiedEndDate)
	}
	if o.CRMEnabled {
		b.AddBool(root, "IS_CRM_ENABLED", true)
	}
	return b, nil
}

// Map reads the templates of a RESULT element
func (c *GetMailingTemplates) Map(result *etree.Element) (*responses.GetMailingTemplates, error) {
	nodes := xmlapi.FindAll(result, "MAILING_TEMPLATE")
	templates := make([]responses.MailingTemplate, 0, len(nodes))
	for _, node := range nodes {
		template, err := mapMailingTemplate(node)
		if err != nil {
			return nil, c.mappingError(err)
		}
		templates = append(templates, template)
	}
	c.l.Debug("mapped templates", zap.Int("count", len(templates)))
	return &responses.GetMailingTemplates{MailingTemplates: templates}, nil
}

func mapMailingTemplate(node *etree.Element) (t responses.MailingTemplate, err error) {
	if t.AllowCRMBlock, err = xmlapi.OptionalBool(node, "ALLOW_CRM_BLOCK"); err != nil {
		return t, err
	}
	if t.FlaggedForBackup, err = xmlapi.Bool(node, "FLAGGED_FOR_BACKUP"); err != nil {
		return t, err
	}
	if t.LastModified, err = xmlapi.Time(node, "LAST_MODIFIED", xmlapi.ResponseDateLayout); err != nil {
		return t, err
	}
	if t.MailingID, err = xmlapi.Int64(node, "MAILING_ID"); err != nil {
		return t, err
	}
	if t.MailingName, err = xmlapi.Text(node, "MAILING_NAME"); err != nil {
		return t, err
	}
	if t.Subject, err = xmlapi.Text(node, "SUBJECT"); err != nil {
		return t, err
	}
	if t.UserID, err = xmlapi.Text(node, "USER_ID"); err != nil {
		return t, err
	}
	visibility, err := xmlapi.Text(node, "VISIBILITY")
	if err != nil {
		return t, err
	}
	t.Visibility, err = requests.ParseVisibility(visibility)
	return t, err
}
