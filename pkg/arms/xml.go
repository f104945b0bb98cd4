// Package arms integrates with the North Carolina ARMS database system:
// query and submission clients plus the XML documents they exchange.
package arms

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	submissionNamespace = "http://nc.gov/arms/hci-cds/v1.0"
	sourceSystem        = "HCI-Forms"
	systemVersion       = "1.0.0"
)

// SubmissionMetadata travels in the header of every ARMS submission.
type SubmissionMetadata struct {
	SubmissionID   string
	SubmissionDate time.Time
	Source         string
}

// Submission is the envelope ARMS expects for form submissions.
type Submission struct {
	XMLName        xml.Name         `xml:"ARMSSubmission"`
	Namespace      string           `xml:"xmlns,attr"`
	Version        string           `xml:"version,attr"`
	SubmissionType string           `xml:"submissionType,attr"`
	Header         SubmissionHeader `xml:"SubmissionHeader"`
	Participant    *Participant     `xml:"ParticipantInformation,omitempty"`
	CarePlan       *CarePlan        `xml:"CarePlanDetails,omitempty"`
	Payload        *GenericPayload  `xml:"SubmissionPayload,omitempty"`
	Processing     Processing       `xml:"ProcessingInstructions"`
}

type SubmissionHeader struct {
	SubmissionID     string `xml:"SubmissionId"`
	SubmissionDate   string `xml:"SubmissionDate"`
	SourceSystem     string `xml:"SourceSystem"`
	Version          string `xml:"Version"`
	SubmittingEntity string `xml:"SubmittingEntity"`
}

type Participant struct {
	Personal    PersonalDetails `xml:"PersonalDetails"`
	Contact     ContactDetails  `xml:"ContactInformation"`
	Address     AddressDetails  `xml:"AddressInformation"`
	Eligibility Eligibility     `xml:"EligibilityInformation"`
}

type PersonalDetails struct {
	FirstName   string `xml:"FirstName"`
	LastName    string `xml:"LastName"`
	MiddleName  string `xml:"MiddleName"`
	SSN         string `xml:"SSN"`
	DateOfBirth string `xml:"DateOfBirth"`
	Gender      string `xml:"Gender"`
}

type ContactDetails struct {
	PrimaryPhone     string `xml:"PrimaryPhone"`
	SecondaryPhone   string `xml:"SecondaryPhone"`
	Email            string `xml:"Email"`
	PreferredContact string `xml:"PreferredContactMethod"`
}

type AddressDetails struct {
	StreetAddress string `xml:"StreetAddress"`
	City          string `xml:"City"`
	State         string `xml:"State"`
	ZipCode       string `xml:"ZipCode"`
}

type Eligibility struct {
	MedicaidNumber    string          `xml:"MedicaidNumber"`
	PrimaryDiagnosis  string          `xml:"PrimaryDiagnosis"`
	CareLevel         string          `xml:"CareLevel"`
	HasRepresentative bool            `xml:"HasRepresentative"`
	Representative    *Representative `xml:"RepresentativeInformation,omitempty"`
}

type Representative struct {
	Name         string `xml:"RepresentativeName"`
	Phone        string `xml:"RepresentativePhone"`
	Relationship string `xml:"RepresentativeRelationship"`
}

type CarePlan struct {
	ParticipantID     string `xml:"ParticipantId"`
	PlanEffectiveDate string `xml:"PlanEffectiveDate"`
	CareAdvisor       string `xml:"CareAdvisor"`
	PlanStatus        string `xml:"PlanStatus"`
	PrimaryGoal       string `xml:"CareGoals>PrimaryGoal"`
	SecondaryGoals    string `xml:"CareGoals>SecondaryGoals"`
	GoalTimeframe     string `xml:"CareGoals>GoalTimeframe"`
	WeeklyHours       string `xml:"ServiceSchedule>WeeklyHours"`
	MonthlyBudget     string `xml:"ServiceSchedule>MonthlyBudget"`
}

type GenericPayload struct {
	Fields []PayloadField `xml:"Field"`
}

type PayloadField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// BuildParticipantEnrollment renders the enrollment submission document.
func BuildParticipantEnrollment(data map[string]any, meta SubmissionMetadata) ([]byte, error) {
	submission := newSubmission("ParticipantEnrollment", meta)

	submission.Participant = &Participant{
		Personal: PersonalDetails{
			FirstName:   field(data, "firstName"),
			LastName:    field(data, "lastName"),
			MiddleName:  field(data, "middleName"),
			SSN:         FormatSSN(field(data, "ssn")),
			DateOfBirth: field(data, "dob"),
			Gender:      field(data, "gender"),
		},
		Contact: ContactDetails{
			PrimaryPhone:     FormatPhone(field(data, "primaryPhone")),
			SecondaryPhone:   FormatPhone(field(data, "secondaryPhone")),
			Email:            field(data, "email"),
			PreferredContact: field(data, "preferredContact"),
		},
		Address: AddressDetails{
			StreetAddress: field(data, "streetAddress"),
			City:          field(data, "city"),
			State:         fieldOr(data, "state", "NC"),
			ZipCode:       field(data, "zipCode"),
		},
		Eligibility: Eligibility{
			MedicaidNumber:    field(data, "medicaidNumber"),
			PrimaryDiagnosis:  field(data, "primaryDiagnosis"),
			CareLevel:         field(data, "careLevel"),
			HasRepresentative: field(data, "hasRepresentative") == "Yes",
		},
	}

	if field(data, "hasRepresentative") == "Yes" {
		submission.Participant.Eligibility.Representative = &Representative{
			Name:         field(data, "representativeName"),
			Phone:        FormatPhone(field(data, "representativePhone")),
			Relationship: field(data, "representativeRelationship"),
		}
	}

	return marshal(submission)
}

// BuildCarePlan renders the care plan submission document.
func BuildCarePlan(data map[string]any, meta SubmissionMetadata) ([]byte, error) {
	submission := newSubmission("CarePlan", meta)

	submission.CarePlan = &CarePlan{
		ParticipantID:     field(data, "participantId"),
		PlanEffectiveDate: field(data, "planEffectiveDate"),
		CareAdvisor:       field(data, "careAdvisor"),
		PlanStatus:        "Active",
		PrimaryGoal:       field(data, "primaryGoal"),
		SecondaryGoals:    field(data, "secondaryGoals"),
		GoalTimeframe:     field(data, "goalTimeframe"),
		WeeklyHours:       field(data, "weeklyHours"),
		MonthlyBudget:     field(data, "monthlyBudget"),
	}

	return marshal(submission)
}

// BuildGenericSubmission renders any other form type as a flat field list.
func BuildGenericSubmission(submissionType string, data map[string]any, meta SubmissionMetadata) ([]byte, error) {
	submission := newSubmission(submissionType, meta)

	payload := &GenericPayload{}
	for name, value := range data {
		payload.Fields = append(payload.Fields, PayloadField{Name: name, Value: fmt.Sprintf("%v", value)})
	}

	submission.Payload = payload

	return marshal(submission)
}

type Processing struct {
	Priority          string `xml:"Priority"`
	NotificationEmail string `xml:"NotificationEmail,omitempty"`
	FollowUpRequired  bool   `xml:"FollowUpRequired"`
}

func newSubmission(submissionType string, meta SubmissionMetadata) *Submission {
	if meta.SubmissionID == "" {
		meta.SubmissionID = "SUB-" + uuid.NewString()
	}

	if meta.SubmissionDate.IsZero() {
		meta.SubmissionDate = time.Now().UTC()
	}

	if meta.Source == "" {
		meta.Source = sourceSystem
	}

	return &Submission{
		Namespace:      submissionNamespace,
		Version:        "1.0",
		SubmissionType: submissionType,
		Header: SubmissionHeader{
			SubmissionID:     meta.SubmissionID,
			SubmissionDate:   meta.SubmissionDate.Format(time.RFC3339),
			SourceSystem:     meta.Source,
			Version:          systemVersion,
			SubmittingEntity: "HCI-CDS Program",
		},
		Processing: Processing{
			Priority:         "Normal",
			FollowUpRequired: true,
		},
	}
}

func marshal(submission *Submission) ([]byte, error) {
	body, err := xml.MarshalIndent(submission, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ARMS submission: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatSSN normalizes a social security number to the NNN-NN-NNNN form ARMS
// requires. Values that are not nine digits pass through unchanged.
func FormatSSN(ssn string) string {
	digits := nonDigits.ReplaceAllString(ssn, "")
	if len(digits) != 9 {
		return ssn
	}

	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

// FormatPhone normalizes a phone number to NNN-NNN-NNNN. Values that are not
// ten digits pass through unchanged.
func FormatPhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) != 10 {
		return phone
	}

	return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
}

func field(data map[string]any, name string) string {
	if value, ok := data[name]; ok && value != nil {
		return fmt.Sprintf("%v", value)
	}

	return ""
}

func fieldOr(data map[string]any, name, fallback string) string {
	if value := field(data, name); value != "" {
		return value
	}

	return fallback
}
