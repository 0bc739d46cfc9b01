package template

type GetTemplateInput struct {
	TemplateID string
}

type ListTemplatesInput struct {
}
