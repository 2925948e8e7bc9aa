package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectMarkerExtraction(t *testing.T) {
	body := "<!-- SUBJECT: Interview at {{company}} -->\n<html><body>hi</body></html>"

	m := subjectMarkerRe.FindStringSubmatch(body)
	assert.NotNil(t, m)
	assert.Equal(t, "Interview at {{company}}", m[1])

	stripped := subjectMarkerRe.ReplaceAllString(body, "")
	assert.Equal(t, "<html><body>hi</body></html>", stripped)
}

func TestSubjectMarkerAbsent(t *testing.T) {
	body := "<html><body>no marker</body></html>"
	assert.Nil(t, subjectMarkerRe.FindStringSubmatch(body))
}
