package constant

// TriageQuestions is the fixed intake sequence. Order is part of the
// contract: answers are stored and reported in exactly this order.
var TriageQuestions = []string{
	"Qual seu nome, idade, whatsapp e cidade?",
	"Qual sua principal dor e motivo da consulta?",
	"Quando iniciou esses sintomas e com qual frequência?",
	"Já foi acompanhado por Psicanalista ou Terapeuta?",
	"Faz uso de medicações? Se sim, quais e por quanto tempo?",
	"Me conte como foi sua infância:",
	"Como foi e é a sua relação com sua mãe:",
	"Como foi e é sua relação com seu pai:",
	"Como foi e é sua relação com seus irmãos:",
	"Como foi ou é sua relação com cônjuge:",
	"Você tem filhos? Como é sua relação com eles?",
	"Como foi sua rotina antes dos sintomas, como é hoje e como deseja que ela fique?",
	"Você possui algum vício?",
	"Você se sente mais conectado na internet do que com as pessoas?",
	"Qual seu hobby ou lazer?",
	"Você trabalha com o que ou com o que já trabalhou?",
}

const ConsentTerm = `Projeto: Psicanálise Digital com Escuta Ampliada – REDE ELLe
Objeto: Uso experimental de prompt com Inteligência Artificial (IA)

1. Esclarecimento da proposta: Você está sendo convidado(a) a participar de uma experiência clínica simbólica, que envolve a interação com uma Inteligência Artificial treinada pela REDE ELLe, sob supervisão da profissional responsável.
2. Natureza experimental: A IA não substitui o atendimento clínico humano, não realiza diagnósticos, não prescreve condutas e não é um profissional de saúde.
3. Responsabilidade e supervisão clínica: Todas as interações serão acompanhadas pela profissional responsável.
4. Quebra de sigilo: A quebra de sigilo será feita em caso de falas sobre suicídio e homicídio do escutado.
5. Limitações da plataforma: O conteúdo das respostas é baseado em algoritmos de predição de linguagem natural, não se tratando de orientação psicológica ou médica.
6. Direito de retirada: Você pode encerrar sua participação a qualquer momento, sem qualquer tipo de prejuízo.
7. Registro e privacidade: Com sua autorização, o conteúdo poderá ser gravado de forma anônima, em conformidade com a LGPD (Lei nº 13.709/2018).`

const (
	GreetingMessage = "Oi. Aqui é seu espaço de escuta sem julgamento e com acolhimento. " +
		"Farei algumas perguntas, e sinta-se livre para responder quanto e como quiser."

	ConsentDeclinedMessage = "Você optou por não participar. A sessão será encerrada. " +
		"Se mudar de ideia, estaremos aqui."

	CrisisMessage = "Foi detectada uma fala relacionada a risco de suicídio ou homicídio. " +
		"Lembre-se do item 4 do Termo de Consentimento: a quebra de sigilo será feita nesses casos. " +
		"É crucial que você procure ajuda profissional imediata. No Brasil, o CVV atende pelo número 188, 24 horas por dia."

	PreparingReportMessage = "Agradeço suas respostas. Agora estou preparando um resumo e um exame psíquico " +
		"preliminar para a profissional responsável. Por favor, aguarde alguns instantes..."

	ClosingFallbackMessage = "Sessão de triagem encerrada. Suas palavras foram registradas com cuidado. " +
		"Obrigado(a) por sua participação."

	EmptyAnswerPrompt = "Sua resposta não foi registrada. Por favor, escreva o que for possível, " +
		"mesmo que seja breve."
)

// Fixed reflection repertoire, pre-approved by the clinician. Used directly by
// the fixed strategy and as the tone reference for the AI strategy.
var ReflectionPhrases = []string{
	"Suas palavras encontram espaço aqui.",
	"Isso que você trouxe é significativo.",
	"A escuta se detém neste ponto.",
	"Uma memória importante se apresenta.",
	"Há algo de muito próprio no que você diz.",
}

const (
	ReflectionFallback  = "Sua fala é recebida e acolhida."
	ShortAnswerReceived = "Recebido. Pode prosseguir."
)

// Prompts sent to the AI Text Generator.
const (
	ReflectionSystemPrompt = "Você é uma IA de escuta psicanalítica, auxiliar da profissional responsável da REDE ELLe. " +
		"Sua função é gerar uma frase curta (máximo 15 palavras), acolhedora e puramente reflexiva, " +
		"que demonstre escuta ativa sobre a fala do paciente. REGRAS ABSOLUTAS: " +
		"1. NUNCA faça perguntas. 2. NUNCA dê conselhos. 3. NUNCA interprete. " +
		"4. NUNCA use \"eu\", \"sinto\", \"entendo\". 5. Foque em validar o ato da fala."

	RephraseSystemPrompt = "O paciente expressou dificuldade em compreender a pergunta. Reformule a pergunta " +
		"original de uma maneira mais aberta, simples e acolhedora, sem perder o objetivo clínico. " +
		"NUNCA dê a sua opinião ou exemplos pessoais. Apenas facilite a compreensão."

	ReportSystemPrompt = "Você é uma IA assistente psicanalítica, auxiliar da profissional responsável da REDE ELLe. " +
		"Seu objetivo é gerar relatórios de triagem estritamente baseados nas respostas fornecidas."

	ClosingSystemPrompt = "Você é uma IA de escuta psicanalítica. Gere uma mensagem curta de encerramento " +
		"de sessão de triagem (máximo 40 palavras), acolhedora e serena. Não faça perguntas, " +
		"não dê conselhos, não prometa resultados."

	// PsychicExamInstructions is the fixed section template of the analytical
	// report. The generator must fill every section from the answers only.
	PsychicExamInstructions = `Como foi o comportamento do paciente?
Atitude para com a IA triadora: Cooperativo? Resistente? Indiferente?
Orientação: Auto-identificatória? Corporal? Temporal? Espacial?

Quais foram as observações?
Me fale sobre a memória do paciente.
Me fale sobre a inteligência do paciente.
Sensopercepção: Normal? Alucinação?
Pensamento: Acelerado? Retardado? Fuga? Bloqueio? Prolixo? Repetição?
Linguagem: Disartria? Afasias? Verbigeração? Parafasia? Neologismo? Logorréia? Para-respostas?

Como é a afetividade do paciente?
Humor do paciente: normal? exaltado? baixa de humor?
Consciência do estado mental?
Hipótese Diagnóstica final:`
)

// Phrases that signal the subject did not understand the pending question.
var IncomprehensionPhrases = []string{
	"não entendi",
	"nao entendi",
	"como assim",
	"não compreendi",
	"nao compreendi",
	"explique melhor",
	"não sei o que responder",
	"nao sei o que responder",
}
