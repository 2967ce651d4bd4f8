package questionnaire

// questionsV1 is the respite-care intake questionnaire. Prompts and option
// labels are bilingual; the Portuguese label is the canonical value stored in
// answers.
var questionsV1 = &Set{
	Version: VersionV1,
	Questions: []Question{
		{
			ID:       "1",
			PromptPT: "Informações de contato do responsável:",
			PromptEN: "Parent/Guardian Contact Information:",
			Type:     TypeGroup,
			Options: []Option{
				{PT: "Nome(s)", EN: "Name(s)"},
				{PT: "Relação com a criança", EN: "Relation to child"},
				{PT: "Telefone", EN: "Phone"},
				{PT: "Endereço", EN: "Address"},
				{PT: "Email", EN: "Email"},
			},
		},
		{
			ID:       "2",
			PromptPT: "Informações de contato de quem fala inglês:",
			PromptEN: "English speaker informer's Contact Information:",
			Type:     TypeGroup,
			Options: []Option{
				{PT: "Nome(s)", EN: "Name(s)"},
				{PT: "Relação com a criança", EN: "Relation to child"},
				{PT: "Telefone", EN: "Phone"},
				{PT: "Endereço", EN: "Address"},
				{PT: "Email", EN: "Email"},
			},
		},
		{
			ID:       "3",
			PromptPT: "Contexto familiar:",
			PromptEN: "Family Background:",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Refugiado (especifique nacionalidade)", EN: "Refugee (specify nationality)"},
				{PT: "Malawiano", EN: "Malawian"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "4",
			PromptPT: "Idioma principal falado em casa:",
			PromptEN: "Primary Language Spoken at Home:",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Kiswahili", EN: "Kiswahili"},
				{PT: "Kirundi", EN: "Kirundi"},
				{PT: "Kinyarwanda", EN: "Kinyarwanda"},
				{PT: "Chichewa", EN: "Chichewa"},
				{PT: "Francês", EN: "French"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "5",
			PromptPT: "A criança tem alguma condição diagnosticada (informada no Health Passport)?",
			PromptEN: "Does the child have a diagnosed condition (stated in the Health Passport)?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "6",
			PromptPT: "Se sim, especifique a(s) condição(ões):",
			PromptEN: "If yes, specify the condition(s):",
			Type:     TypeText,
		},
		{
			ID:       "7",
			PromptPT: "Descrição fornecida pelo Health Passport:",
			PromptEN: "Description provided by the Health Passport:",
			Type:     TypeText,
		},
		{
			ID:       "8",
			PromptPT: "Sintomas observados pelo responsável:",
			PromptEN: "No specific/official condition(s), but observed symptoms by the guardian:",
			Type:     TypeText,
		},
		{
			ID:       "9",
			PromptPT: "A criança toma medicamentos regularmente?",
			PromptEN: "Does the child take medication regularly?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "10",
			PromptPT: "Se sim, liste os medicamentos:",
			PromptEN: "List the name or description of medication(s):",
			Type:     TypeText,
		},
		{
			ID:       "11",
			PromptPT: "Quem é responsável por fornecer a prescrição repetitiva?",
			PromptEN: "Who is responsible for providing the child with the repetitive prescription?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Centro de Saúde em Dzaleka", EN: "Health Centre in Dzaleka"},
				{PT: "Outra organização de saúde no Malawi", EN: "Other Health Organization in Malawi"},
				{PT: "Família ou parentes compram o remédio", EN: "Family or relatives buy the medicine"},
				{PT: "Profissionais de saúde voluntários internacionais através da Fraternity Without Borders", EN: "International Health Volunteer Professionals through Fraternity Without Borders"},
				{PT: "Outro", EN: "Others"},
			},
		},
		{
			ID:       "12",
			PromptPT: "A criança possui alergias?",
			PromptEN: "Does the child have any allergies?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Não", EN: "No"},
				{PT: "Alimentar", EN: "Food"},
				{PT: "Medicamentos", EN: "Medication"},
				{PT: "Ambiental", EN: "Environmental"},
			},
		},
		{
			ID:       "13",
			PromptPT: "Especifique:",
			PromptEN: "Specify:",
			Type:     TypeText,
		},
		{
			ID:       "14",
			PromptPT: "A criança utiliza algum equipamento especial?",
			PromptEN: "Does the child use any special equipment?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Não", EN: "No"},
				{PT: "Cadeira de rodas", EN: "Wheelchair"},
				{PT: "Aparelho auditivo", EN: "Hearing aids"},
				{PT: "Sonda de alimentação", EN: "Feeding tube"},
				{PT: "Adaptações em casa", EN: "Adaptations at home"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "15",
			PromptPT: "A criança segue alguma dieta especial?",
			PromptEN: "Does the child follow a special diet?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Não", EN: "No"},
				{PT: "Vegetariana", EN: "Vegetarian"},
				{PT: "Sem glúten", EN: "Gluten-free"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "16",
			PromptPT: "Período pré-natal:",
			PromptEN: "Prenatal Period:",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Gravidez normal", EN: "Normal pregnancy"},
				{PT: "Complicações", EN: "Complications"},
				{PT: "Exposição a substâncias", EN: "Exposure to substances"},
				{PT: "Ambiente de alto estresse", EN: "High-stress environment"},
				{PT: "Cuidados pré-natais", EN: "Prenatal care"},
			},
		},
		{
			ID:       "17",
			PromptPT: "Informações de nascimento:",
			PromptEN: "Birth Information:",
			Type:     TypeGroup,
			Options: []Option{
				{PT: "Duração da gravidez: a termo, prematuro, pós-termo", EN: "Duration of pregnancy: Full-term, Preterm, Post-term"},
				{PT: "Local de nascimento: casa, hospital, centro de saúde", EN: "Place of birth: Home birth, Hospital Birth, Health Centre Birth"},
				{PT: "Tipo de parto: vaginal, cesariana", EN: "Type of delivery: Vaginal, Cesarean"},
				{PT: "Peso ao nascer: normal, baixo, alto", EN: "Birth weight: Normal, Low, High"},
			},
		},
		{
			ID:       "18",
			PromptPT: "Complicações no nascimento:",
			PromptEN: "Complications at birth:",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "19",
			PromptPT: "Período neonatal:",
			PromptEN: "Neonatal period:",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Normal", EN: "Normal"},
				{PT: "Necessitou UTI neonatal", EN: "Required NICU care"},
				{PT: "Dificuldades de alimentação", EN: "Feeding difficulties"},
				{PT: "Problemas respiratórios", EN: "Respiratory issues"},
				{PT: "Outras preocupações de saúde", EN: "Other health concerns"},
			},
		},
		{
			ID:       "20",
			PromptPT: "Como a criança reage a novos ambientes?",
			PromptEN: "How does the child react to new environments?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Calma", EN: "Calm"},
				{PT: "Ansiosa", EN: "Anxious"},
				{PT: "Animada", EN: "Excited"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "21",
			PromptPT: "A criança apresenta desafios comportamentais?",
			PromptEN: "Does the child experience behavioral challenges?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Não", EN: "No"},
				{PT: "Birras", EN: "Tantrums or meltdowns"},
				{PT: "Agressão", EN: "Aggression"},
				{PT: "Isolamento", EN: "Withdrawal"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "22",
			PromptPT: "A criança prefere:",
			PromptEN: "Does the child prefer:",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Atividades em grupo", EN: "Group activities"},
				{PT: "Interação individual", EN: "One-on-one interaction"},
				{PT: "Brincadeira solitária", EN: "Solitary play"},
			},
		},
		{
			ID:       "23",
			PromptPT: "O que ajuda a acalmar a criança?",
			PromptEN: "What helps calm the child during distress?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Espaço silencioso", EN: "Quiet space"},
				{PT: "Brinquedo favorito", EN: "Favorite toy"},
				{PT: "Conforto físico", EN: "Physical comfort"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "24",
			PromptPT: "A criança é independente para comer e beber?",
			PromptEN: "Is the child independent in eating and drinking?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "25",
			PromptPT: "A criança precisa de ajuda para ir ao banheiro?",
			PromptEN: "Does the child require assistance with toileting?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "26",
			PromptPT: "A criança possui rotina de sono consistente?",
			PromptEN: "Does the child have a consistent sleep routine?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "27",
			PromptPT: "A criança tira soneca durante o dia?",
			PromptEN: "Does the child nap during the day?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "28",
			PromptPT: "Como a criança se comunica?",
			PromptEN: "How does the child communicate?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Verbal", EN: "Verbal"},
				{PT: "Não-verbal", EN: "Non-verbal"},
				{PT: "Língua de sinais Malawiana", EN: "Malawian sign language"},
				{PT: "Usa dispositivo de comunicação", EN: "Uses a communication device"},
			},
		},
		{
			ID:       "29",
			PromptPT: "A criança possui sensibilidades sensoriais?",
			PromptEN: "Does the child have sensory sensitivities?",
			Type:     TypeMultiSelect,
			Options: []Option{
				{PT: "Não", EN: "No"},
				{PT: "Luzes fortes", EN: "Bright lights"},
				{PT: "Sons altos", EN: "Loud noises"},
				{PT: "Texturas", EN: "Textures"},
				{PT: "Outro", EN: "Other"},
			},
		},
		{
			ID:       "30",
			PromptPT: "Qual a melhor forma de dar instruções à criança?",
			PromptEN: "What is the best way to give instructions to the child?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Frases curtas", EN: "Short sentences"},
				{PT: "Recursos visuais", EN: "Visual aids"},
				{PT: "Demonstração", EN: "Demonstration"},
			},
		},
		{
			ID:       "31",
			PromptPT: "A criança já se afastou ou fugiu alguma vez?",
			PromptEN: "Does the child have a history of wandering or running away?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim", EN: "Yes"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "32",
			PromptPT: "A criança apresenta convulsões ou emergências médicas?",
			PromptEN: "Does the child experience seizures or other medical emergencies?",
			Type:     TypeSingleChoice,
			Options: []Option{
				{PT: "Sim - descrever protocolo", EN: "Yes - describe the emergency protocol"},
				{PT: "Não", EN: "No"},
			},
		},
		{
			ID:       "33",
			PromptPT: "Objetivos e recomendações do cuidador:",
			PromptEN: "Caregiver Feedback and Recommendations:",
			Type:     TypeGroup,
			Options: []Option{
				{PT: "Objetivo principal para a criança em cuidados de alívio", EN: "Primary goal for the child in respite care"},
				{PT: "Atividades a evitar", EN: "Activities to avoid"},
				{PT: "Atualizações desejadas", EN: "Updates about child's activities"},
				{PT: "Resposta da criança durante a sessão", EN: "How did the child respond during the session"},
				{PT: "Incidentes a relatar", EN: "Were there any incidents to report"},
				{PT: "Recomendações para sessões futuras", EN: "Recommendations for future sessions"},
			},
		},
	},
}
