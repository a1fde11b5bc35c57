package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe
Professional Summary
Backend engineer building services in Python.
Work Experience
Senior Engineer at Acme, 2019-2024
Deployed services on AWS with Docker.
Education:
B.Sc. Computer Science`

func TestResumeExtractor(t *testing.T) {
	extractor := NewResumeExtractor()

	t.Run(`extracts skills in pattern order without duplicates`, func(t *testing.T) {
		profile := extractor.ExtractInformation(sampleResume + "\nMore Python and Docker work.")
		require.Equal(t, []string{"Python", "AWS", "Docker"}, profile.Skills)
	})

	t.Run(`overlapping skill categories`, func(t *testing.T) {
		profile := extractor.ExtractInformation("Experienced in Python and AWS, also skilled in Docker")
		require.ElementsMatch(t, []string{"Python", "AWS", "Docker"}, profile.Skills)
	})

	t.Run(`name and email from the header lines`, func(t *testing.T) {
		profile := extractor.ExtractInformation("John Smith\nEmail: john@x.com")
		require.Equal(t, "John Smith", profile.ContactInfo.Name)
		require.Equal(t, "john@x.com", profile.ContactInfo.Email)
	})

	t.Run(`extracts contact info`, func(t *testing.T) {
		profile := extractor.ExtractInformation(sampleResume)
		require.Equal(t, "Jane Doe", profile.ContactInfo.Name)
		require.Equal(t, "jane.doe@example.com", profile.ContactInfo.Email)
		require.Equal(t, "(555) 123-4567", profile.ContactInfo.Phone)
		require.Equal(t, "linkedin.com/in/janedoe", profile.ContactInfo.LinkedIn)
		require.Empty(t, profile.ContactInfo.GitHub)
		require.Equal(t, sampleResume, profile.RawText)
	})

	t.Run(`splits sections in document order`, func(t *testing.T) {
		profile := extractor.ExtractInformation(sampleResume)
		require.Equal(t, []string{"other", "professional summary", "work experience", "education"}, profile.Sections.Names())

		experience, ok := profile.Sections.Get("work experience")
		require.True(t, ok)
		require.Equal(t, "Senior Engineer at Acme, 2019-2024\nDeployed services on AWS with Docker.", experience)

		education, _ := profile.Sections.Get("education")
		require.Equal(t, "B.Sc. Computer Science", education)
	})

	t.Run(`rejects résumé titles as names`, func(t *testing.T) {
		profile := extractor.ExtractInformation("My Resume\nJane Doe")
		require.Empty(t, profile.ContactInfo.Name)

		profile = extractor.ExtractInformation("jane@example.com\nJane Doe")
		require.Empty(t, profile.ContactInfo.Name)
	})

	t.Run(`empty text yields an empty profile`, func(t *testing.T) {
		profile := extractor.ExtractInformation("")
		require.NotNil(t, profile.Skills)
		require.Empty(t, profile.Skills)
		require.Empty(t, profile.Sections)
		require.Empty(t, profile.ContactInfo.Name)
	})

	t.Run(`header detection`, func(t *testing.T) {
		require.False(t, isSectionHeader("Skills"))
		require.True(t, isSectionHeader("Technical Skills"))
		require.True(t, isSectionHeader("Education:"))
		require.False(t, isSectionHeader("Led a project to migrate our experience platform to a new stack"))
		require.False(t, isSectionHeader("Built REST services"))
	})

	t.Run(`section keys keep letters and spaces`, func(t *testing.T) {
		require.Equal(t, "work experience", sectionKey("Work Experience:"))
		require.Equal(t, "projects", sectionKey("# Projects #"))
	})
}
