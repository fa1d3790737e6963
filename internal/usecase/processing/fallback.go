package processing

import "fmt"

// Deterministic placeholder content served outside production when no
// transcription or report backend is reachable. Keeps local development
// and demos working without API keys.

const placeholderTranscript = `Bonjour à tous. Commençons notre réunion de planification Q1.

Premièrement, je souhaite discuter de nos objectifs pour le trimestre. Nous devons nous concentrer sur trois domaines principaux : améliorer notre système d'authentification, améliorer l'expérience utilisateur et réduire la dette technique.

Jean : Je suis d'accord. Le système d'authentification a été un point de douleur pour les utilisateurs.

Sophie : J'ai déjà commencé à travailler sur un design pour le nouveau flux d'authentification.

Prenons une décision. Sophie dirigera la refonte de l'authentification.

Maintenant, concernant le calendrier du sprint. Vu l'ampleur des changements, je propose d'étendre le sprint actuel de deux jours.

Équipe : Oui, ça semble raisonnable.

Excellent. C'est donc décidé. Nous prolongeons le sprint de deux jours.

Avant de terminer, notons quelques actions :
- Sophie : Compléter le design de l'API d'authentification d'ici vendredi prochain
- Michel : Mettre à jour la documentation du projet d'ici mercredi
- David : Planifier la réunion de revue avec les parties prenantes pour lundi

Y a-t-il autre chose ?

Jean : Nous attendons toujours l'approbation de l'équipe sécurité.

Noté. Je les relancerai aujourd'hui.

Très bien, excellente réunion. Retrouvons-nous la semaine prochaine.`

func placeholderReport(title string) string {
	if title == "" {
		title = "Réunion"
	}
	return fmt.Sprintf(`# [Optimisé] Analyse Stratégique : %s

## 👥 Participants
- Sophie (Ingénierie)
- Michel (Produit)
- Jean (Lead technique)

## 🎯 Résumé Exécutif
- Priorisation absolue du système d'authentification pour réduire les plaintes clients.
- Extension du sprint actuel de 2 jours pour absorber la charge supplémentaire.
- Renforcement de la qualité via des revues de code obligatoires par les pairs.

## ⚖️ Décisions Clés
- Arbitrage en faveur de la refonte immédiate de l'auth au lieu de corriger les anciens bugs mineurs.
- Validation du processus de Peer Review systématique sur toutes les branches.

## ✅ Actions à Faire
| Priorité | Action | Responsable | Échéance | Output attendu |
|:---:|:---|:---|:---|:---|
| 🔴 | Finaliser le design de l'API d'auth | Sophie | Vendredi prochain | Spec validée |
| 🟠 | Mettre à jour la doc technique | Michel | Mercredi | Documentation en ligne |
| 🔴 | Relancer l'équipe Sécurité | Jean | Aujourd'hui | Approbation obtenue |

## 🧠 Discussion & Nuances
- **Qualité de code** : Débat sur la perte de vélocité induite par les Peer Reviews. Accord final car la stabilité prévaut.
- **Timeline** : Inquiétude sur le dépassement de budget. L'extension de sprint est vue comme un "one-shot".

## 🛑 Blocages & Alertes
- Risque de délai si l'équipe Sécurité ne répond pas sous 24h.

## 💡 Idées & Opportunités Backlog
- Implémentation de Feature Flags pour le rollout progressif.

## 🚀 Prochaines Étapes
1. Déclenchement de la phase de design API.
2. Déblocage du goulot d'étranglement Sécurité.
3. Mise en place des règles de PR sur GitHub.
`, title)
}
