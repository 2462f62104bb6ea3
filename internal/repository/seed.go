package repository

import "example.com/fittrack/internal/domain"

// Seed supplement identifiers.
const (
	SupplementCreatine = "supp_creatine"
	SupplementWhey     = "supp_whey"
)

func seedSupplements() []domain.Supplement {
	return []domain.Supplement{
		{ID: SupplementCreatine, Name: "Creatina", Dose: domain.Dose{Amount: 6, Unit: "g"}, TrackingType: domain.TrackingDailyCheck},
		{ID: SupplementWhey, Name: "Whey Protein", Dose: domain.Dose{Amount: 30, Unit: "g"}, TrackingType: domain.TrackingCounter},
	}
}

func gymSport() domain.SportDefinition {
	return domain.SportDefinition{ID: domain.SportGym, Name: "Academia", Icon: domain.IconRef{Set: "ionicons", Name: "barbell-outline"}}
}

func seedSports() []domain.SportDefinition {
	return []domain.SportDefinition{
		gymSport(),
		{ID: "volei_quadra", Name: "Vôlei de Quadra", Icon: domain.IconRef{Set: "material-community", Name: "volleyball"}},
		{ID: "volei_praia", Name: "Vôlei de Praia", Icon: domain.IconRef{Set: "ionicons", Name: "sunny-outline"}},
		{ID: "futebol", Name: "Futebol Society", Icon: domain.IconRef{Set: "ionicons", Name: "football-outline"}},
		{ID: "boxe", Name: "Boxe", Icon: domain.IconRef{Set: "material-community", Name: "boxing-glove"}},
	}
}

func seedPlans() domain.PlanSet {
	return domain.PlanSet{
		"A": {
			ID: "A", Name: "Treino A", MuscleGroups: "Peito/Ombro/Tríceps", Position: 0,
			Exercises: []domain.Exercise{
				{ID: "A1", Name: "Supino Inclinado com halteres", TargetMuscle: "Peitoral", Sets: 4, Reps: "12/10/10/8", Notes: "Banco 45°"},
				{ID: "A2", Name: "Supino Reto com halteres", TargetMuscle: "Peitoral", Sets: 3, Reps: "12/10/8", Notes: "Banco 30°"},
				{ID: "A3", Name: "Supino Articulado Declinado", TargetMuscle: "Peitoral", Sets: 4, Reps: "12/10/10/8"},
				{ID: "A4", Name: "Crucifixo Máquina", TargetMuscle: "Peitoral", Sets: 3, Reps: "12/10/8"},
				{ID: "A5", Name: "Desenvolvimento Máquina", TargetMuscle: "Ombro", Sets: 4, Reps: "12/10/10/8"},
				{ID: "A6", Name: "Elevação Lateral com Halter", TargetMuscle: "Ombro", Sets: 3, Reps: "12/10/8"},
				{ID: "A7", Name: "Tríceps Testa W", TargetMuscle: "Tríceps", Sets: 3, Reps: "12/10/8", Notes: "Barra W"},
				{ID: "A8", Name: "Tríceps Francês com Halter", TargetMuscle: "Tríceps", Sets: 3, Reps: "12/10/8"},
			},
		},
		"B": {
			ID: "B", Name: "Treino B", MuscleGroups: "Costas/Bíceps", Position: 1,
			Exercises: []domain.Exercise{
				{ID: "B1", Name: "Puxada Anterior", TargetMuscle: "Dorsal", Sets: 4, Reps: "12/10/8/6"},
				{ID: "B2", Name: "Remada Unilateral Halter", TargetMuscle: "Dorsal", Sets: 4, Reps: "12/10/8/6", Notes: "Serrote"},
				{ID: "B3", Name: "Remada Máquina Aberta", TargetMuscle: "Dorsal", Sets: 3, Reps: "12/10/8"},
				{ID: "B4", Name: "Extensão Lombar 45°", TargetMuscle: "Dorsal", Sets: 3, Reps: "12/10/8"},
				{ID: "B5", Name: "Remada Alta Polia Baixa", TargetMuscle: "Trapézio", Sets: 4, Reps: "12/10/10/8"},
				{ID: "B6", Name: "Rosca Halteres", TargetMuscle: "Bíceps", Sets: 3, Reps: "12/10/8", Notes: "Banco 45°"},
				{ID: "B7", Name: "Rosca Martelo", TargetMuscle: "Bíceps", Sets: 3, Reps: "12/10/8", Notes: "Cross corda"},
			},
		},
		"C": {
			ID: "C", Name: "Treino C", MuscleGroups: "Perna completo", Position: 2,
			Exercises: []domain.Exercise{
				{ID: "C1", Name: "Gêmeos em Pé", TargetMuscle: "Inferiores", Sets: 4, Reps: "12/10/10/8", Notes: "Máquina"},
				{ID: "C2", Name: "Agachamento Smith", TargetMuscle: "Inferiores", Sets: 4, Reps: "12/10/10/8"},
				{ID: "C3", Name: "Leg Press Horizontal", TargetMuscle: "Inferiores", Sets: 3, Reps: "8", Notes: "Unilateral"},
				{ID: "C4", Name: "Cadeira Extensora", TargetMuscle: "Inferiores", Sets: 4, Reps: "11/10/8/6"},
				{ID: "C5", Name: "Mesa Flexora", TargetMuscle: "Inferiores", Sets: 3, Reps: "12/10/8"},
				{ID: "C6", Name: "Cadeira Flexora", TargetMuscle: "Inferiores", Sets: 4, Reps: "12/10/8/6"},
				{ID: "C7", Name: "Cadeira Abdutora", TargetMuscle: "Glúteos", Sets: 4, Reps: "12/10/10/8"},
				{ID: "C8", Name: "Cadeira Adutora", TargetMuscle: "Glúteos", Sets: 4, Reps: "12/10/10/8"},
			},
		},
	}
}
