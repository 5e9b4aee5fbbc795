package emit

import (
	"bytes"
	"text/template"
)

// PageTemplate renders the page module that wraps a component's JSON.
type PageTemplate interface {
	Render(data PageData) ([]byte, error)
}

// PageData is the input of the page module template.
type PageData struct {
	Name string
	// Kebab is the file stem shared by page and translation files.
	Kebab string
	// TranslationsDir is the translations directory relative to the page.
	TranslationsDir string
}

const defaultPageModule = `import * as React from 'react';
import ApiPage from 'docs/src/modules/components/ApiPage';
import mapApiPageTranslations from 'docs/src/modules/utils/mapApiPageTranslations';
import jsonPageContent from './{{.Kebab}}.json';

export default function Page(props) {
  const { descriptions, pageContent } = props;
  return <ApiPage descriptions={descriptions} pageContent={pageContent} />;
}

Page.getInitialProps = () => {
  const req = require.context(
    '{{.TranslationsDir}}',
    false,
    /\.\/{{.Kebab}}.*\.json$/,
  );
  const descriptions = mapApiPageTranslations(req);

  return {
    descriptions,
    pageContent: jsonPageContent,
  };
};
`

type textTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate parses a text/template page module. An empty text uses
// the built-in module.
func NewPageTemplate(text string) (PageTemplate, error) {
	if text == "" {
		text = defaultPageModule
	}
	tmpl, err := template.New("page").Parse(text)
	if err != nil {
		return nil, err
	}
	return &textTemplate{tmpl: tmpl}, nil
}

func (t *textTemplate) Render(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
