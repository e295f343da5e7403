package jenkins

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildListXML = `<freeStyleProject _class="hudson.model.FreeStyleProject">
  <build><number>110</number><url>http://ci/job/acceptance/110/</url></build>
  <build><number>109</number></build>
  <build><number>108</number></build>
  <build><number>107</number></build>
  <build><number>1</number></build>
  <firstBuild><number>1</number></firstBuild>
  <lastSuccessfulBuild><number>108</number></lastSuccessfulBuild>
</freeStyleProject>`

func TestParseBuildList(t *testing.T) {
	numbers, err := ParseBuildList(buildListXML)
	require.NoError(t, err)
	assert.Equal(t, []string{"110", "109", "107"}, numbers)
}

func TestParseBuildListMissingAnchor(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "no first build",
			body: `<project><build><number>2</number></build><lastSuccessfulBuild><number>2</number></lastSuccessfulBuild></project>`,
		},
		{
			name: "no last successful build",
			body: `<project><build><number>2</number></build><firstBuild><number>1</number></firstBuild></project>`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBuildList(tc.body)
			var malformed *MalformedDocumentError
			assert.True(t, errors.As(err, &malformed))
		})
	}
}

func TestCompareBuildNumbers(t *testing.T) {
	assert.Negative(t, CompareBuildNumbers("9", "10"))
	assert.Positive(t, CompareBuildNumbers("100", "99"))
	assert.Zero(t, CompareBuildNumbers("5", "5"))
	assert.Negative(t, CompareBuildNumbers("a", "b"))
	assert.True(t, BuildReference{Number: "9"}.Less(BuildReference{Number: "10"}))
}
