package processing

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
)

// Reporter turns a transcribed meeting into a structured report
type Reporter interface {
	// Configured reports whether the backend has usable credentials
	Configured() bool
	// Generate produces the report from the meeting's transcript and markers
	Generate(ctx context.Context, meeting *entities.Meeting) (string, error)
}

const reportSystemPrompt = `Tu es un assistant de haute volée pour la rédaction de comptes-rendus stratégiques. Tu excels dans l'extraction de la valeur ajoutée et la distinction entre informations prioritaires et bruits de fond. Adapte la langue au contenu de la transcription.`

// GroqReporter generates reports through Groq chat completions
type GroqReporter struct {
	client *ai.GroqClient
}

// NewGroqReporter creates a reporter backed by the Groq API
func NewGroqReporter(client *ai.GroqClient) *GroqReporter {
	return &GroqReporter{client: client}
}

// Configured reports whether the backend has usable credentials
func (r *GroqReporter) Configured() bool {
	return r.client.Configured()
}

// Generate produces the report from the meeting's transcript and markers
func (r *GroqReporter) Generate(ctx context.Context, meeting *entities.Meeting) (string, error) {
	if !meeting.HasTranscript() {
		return "", fmt.Errorf("meeting %s has no transcript", meeting.ID)
	}

	report, err := r.client.ChatCompletion(ctx, reportSystemPrompt, BuildReportPrompt(meeting))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(report) == "" {
		return "", fmt.Errorf("no report generated")
	}
	return report, nil
}

// BuildReportPrompt assembles the user prompt from the meeting's metadata,
// markers, and transcript. The instructions ask for a report in the same
// language as the transcript.
func BuildReportPrompt(meeting *entities.Meeting) string {
	title := ""
	if meeting.Title != nil {
		title = *meeting.Title
	}
	meetingContext := ""
	if meeting.Context != nil {
		meetingContext = *meeting.Context
	}

	markerInfo := ""
	if len(meeting.Markers) > 0 {
		lines := make([]string, 0, len(meeting.Markers))
		for i := range meeting.Markers {
			lines = append(lines, "- "+meeting.Markers[i].Render())
		}
		markerInfo = "\n\nUser-marked timestamps during recording:\n" + strings.Join(lines, "\n")
	}

	transcript := ""
	if meeting.Transcript != nil {
		transcript = *meeting.Transcript
	}

	return fmt.Sprintf(`Tu es un expert en synthèse stratégique et prise de notes pour cadres dirigeants. Ton objectif est de transformer une transcription de réunion brute en un compte-rendu d'exception, ultra-actionnable et structuré.

**LANGUE : GÉNÈRE LE RAPPORT DANS LA MÊME LANGUE QUE LA TRANSCRIPTION (Français si transcription FR, Anglais si EN).**

### INPUTS
- Titre initial : %s
- Type : %s
- Contexte : %s
- Marqueurs temporels manuels : %s
- TRANSCRIPTION :
%s

### DIRECTIVES DE RÉDACTION
1. **Titre Descriptif** : Ne garde pas le titre initial. Analyse le sujet principal et propose un titre impactant (ex: "Arbitrage Budget Q1 : Focus Authentification & Sécurité").
2. **Participants** : Extrais les noms des participants identifiés dans la transcription.
3. **Résumé Exécutif** : Style télégraphique. Max 3 puces. Uniquement les faits majeurs.
4. **Décisions vs Actions** :
   - Une DÉCISION est un arbitrage fait, un changement de statut ou une validation.
   - Une ACTION est une tâche concrète à accomplir.
5. **Précision des Actions** : Format [Verbe d'action] + [Output attendu] + [Deadline extraite ou estimée] + [Responsable].
6. **Nuances & Climat** : Note les désaccords, les préoccupations soulevées ou les alternatives sérieuses qui ont été écartées.
7. **Blocages Réels** : Identifie ce qui empêche d'avancer (dépendances externes, manque de budget, etc.).
8. **Idées & Backlog** : Priorise les suggestions 💡 (Maintenant vs Plus tard).
9. **Roadmap Immédiate** : Section "Prochaines étapes" avec les 3 priorités post-réunion.

### STRUCTURE ATTENDUE (Markdown)

# [Titre Stratégique Détecté]

## 👥 Participants
(Liste des personnes identifiées)

## 🎯 Résumé Exécutif
- (Puce 1)
- (Puce 2)
- (Puce 3)

## ⚖️ Décisions Clés
- (Liste des décisions actées)

## ✅ Actions à Faire
| Priorité | Action | Responsable | Échéance | Output attendu |
|:---:|:---|:---|:---|:---|
| 🔴 | (Ex: Finaliser mockups) | (Nom) | (Date) | (Ex: Figma validé) |

## 🧠 Discussion & Nuances
- **Sujet X** : Points de friction, arguments pour/contre.
- **Sujet Y** : Alternatives évoquées.

## 🛑 Blocages & Alertes
- (Lister les points de blocage concrets)

## 💡 Idées & Opportunités Backlog
- (Idées à explorer plus tard)

## 🚀 Prochaines Étapes
1. (Priorité 1)
2. (Priorité 2)
3. (Priorité 3)

Rends le rapport professionnel, dense en informations utiles et évite le remplissage inutile.`,
		title, meeting.Type, meetingContext, markerInfo, transcript)
}
