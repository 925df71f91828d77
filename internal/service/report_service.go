package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"screenclash/internal/models"
)

// ReportService emails a session summary to the parent when a child's
// screen-time session ends. Delivery goes through Amazon SES.
type ReportService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewReportService creates a new report service. An empty fromEmail
// yields a disabled service that skips all sends.
func NewReportService(awsRegion, fromEmail, fromName string) (*ReportService, error) {
	if fromEmail == "" {
		log.Println("Report service disabled: SES_FROM_EMAIL not configured")
		return &ReportService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Report service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &ReportService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the report service is enabled
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// SendSessionReport emails the parent a summary of the exercise runs a
// child completed during a screen-time session.
func (s *ReportService) SendSessionReport(ctx context.Context, toEmail, childName string, records []models.HistoryRecord) error {
	if !s.enabled {
		log.Printf("Skipping report send (service disabled): session report for %s", childName)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Resume de la session de %s", childName)

	var lines []string
	for _, rec := range records {
		lines = append(lines, formatRecordLine(&rec))
	}

	textBody := fmt.Sprintf(`Bonjour,

Voici le resume de la derniere session de %s :

%s

---
Email automatique de ScreenClash. Merci de ne pas repondre.
`, childName, strings.Join(lines, "\n"))

	htmlItems := make([]string, 0, len(lines))
	for _, line := range lines {
		htmlItems = append(htmlItems, fmt.Sprintf("<li>%s</li>", line))
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Resume de la session de %s</h2>
	<ul>
		%s
	</ul>
	<p style="font-size: 12px; color: #666;">Email automatique de ScreenClash. Merci de ne pas repondre.</p>
</body>
</html>
`, childName, strings.Join(htmlItems, "\n\t\t"))

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// formatRecordLine renders one exercise run as a summary line
func formatRecordLine(rec *models.HistoryRecord) string {
	d := rec.Details
	switch {
	case rec.GameType == models.ExerciseLecture && d.DurationSeconds != nil:
		return fmt.Sprintf("Lecture : %d secondes de lecture a voix haute", *d.DurationSeconds)
	case d.Score != nil && d.TotalQuestions != nil:
		mistakes := 0
		if d.Mistakes != nil {
			mistakes = *d.Mistakes
		}
		return fmt.Sprintf("%s : %d/%d reussis, %d erreurs", gameLabel(rec.GameType), *d.Score, *d.TotalQuestions, mistakes)
	default:
		return fmt.Sprintf("%s : exercice termine", gameLabel(rec.GameType))
	}
}

func gameLabel(t models.ExerciseType) string {
	switch t {
	case models.ExerciseMath:
		return "Calcul"
	case models.ExerciseQuiz:
		return "Quiz"
	case models.ExerciseWrite:
		return "Orthographe"
	case models.ExerciseLecture:
		return "Lecture"
	default:
		return string(t)
	}
}

// sendEmail sends an email using Amazon SES
func (s *ReportService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
