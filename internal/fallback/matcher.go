// Package fallback answers chat questions locally when the completion API is
// unreachable. It is a fixed keyword table, not a model: good enough to point
// a visitor at the right section of the site.
package fallback

import "strings"

// rule matches when any group of keywords is fully contained in the lowered
// input. groups are OR-ed; keywords inside a group are AND-ed.
type rule struct {
	groups   [][]string
	response string
}

func (r rule) matches(lower string) bool {
	for _, group := range r.groups {
		all := true
		for _, kw := range group {
			if !strings.Contains(lower, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// anyOf builds one single-keyword group per keyword (plain OR).
func anyOf(keywords ...string) [][]string {
	groups := make([][]string, 0, len(keywords))
	for _, kw := range keywords {
		groups = append(groups, []string{kw})
	}
	return groups
}

// rules are tested in declared order; the first match wins. Several rules can
// match the same input, so this order is the tie-break.
var rules = []rule{
	{
		groups:   [][]string{{"quem", "bruno"}},
		response: "Bruno Martins é um desenvolvedor full-stack e especialista em automação com vasta experiência em desenvolvimento de sistemas web, automação de processos e criação de chatbots com IA.",
	},
	{
		groups:   anyOf("projeto", "trabalho", "portfolio"),
		response: "Bruno desenvolveu diversos projetos, incluindo um Assistente Financeiro no WhatsApp, Robô Paris para automação bancária, sistemas de otimização de rotas, automação para FGTS Digital e DCTFWeb.",
	},
	{
		groups:   anyOf("habilidade", "skill", "conhecimento", "tecnologia", "linguagem", "programa"),
		response: "Bruno é especialista em Python, JavaScript/TypeScript, React, Node.js, automação com Selenium e PyAutoGUI, integrações com IA, e desenvolvimento de sistemas web completos.",
	},
	{
		groups:   anyOf("contato", "email", "mensagem", "whatsapp", "telefone"),
		response: "Você pode entrar em contato com Bruno através do botão de WhatsApp no site ou pelos links de suas redes sociais.",
	},
	{
		groups:   anyOf("paris"),
		response: "O Robô Paris é uma automação bancária desenvolvida por Bruno que concilia extratos e executa operações repetitivas em múltiplos bancos sem intervenção manual.",
	},
	{
		groups:   anyOf("fgts", "dctf"),
		response: "Bruno criou automações para o FGTS Digital e a DCTFWeb que geram guias e transmitem declarações fiscais automaticamente, eliminando horas de trabalho manual por mês.",
	},
	{
		groups:   anyOf("financeiro"),
		response: "O Assistente Financeiro no WhatsApp é um chatbot criado por Bruno que registra gastos, categoriza despesas e responde consultas financeiras direto na conversa.",
	},
	{
		groups:   anyOf("rota"),
		response: "Bruno desenvolveu um sistema de otimização de rotas que calcula trajetos de entrega mais curtos, reduzindo custo de combustível e tempo de viagem.",
	},
}

const defaultResponse = "Estou aqui para fornecer informações sobre Bruno Martins e seus projetos. Pergunte-me sobre suas habilidades, projetos desenvolvidos ou como entrar em contato."

// Match returns the canned response for the first rule the message satisfies,
// or the default response when none does. Pure function: same input, same
// output, no failure mode.
func Match(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if r.matches(lower) {
			return r.response
		}
	}
	return defaultResponse
}
