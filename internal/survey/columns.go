package survey

// Normalized column names of the questionnaire export. Headers are matched
// after trimming and lower-casing, so these constants are the canonical form.
const (
	ColTimestamp          = "timestamp"
	ColFaculty            = "fakultas"
	ColProgram            = "program_studi"
	ColAllowance          = "rata-rata_uang_saku_perbulan"
	ColFomoSpend          = "pengeluaran_untuk_fomo_per_bulan"
	ColFinanceSkill       = "kemampuan_mengelola_keuangan"
	ColFomoSpendFreq      = "frekuensi_fomo_pengeluaran"
	ColFomoActivityFreq   = "frekuensi_kegiatan_karena_fomo"
	ColEmotionImpact      = "pengaruh_fomo_terhadap_emosi"
	ColFinanceStressFreq  = "frekuensi_stres_karena_finansial"
	ColMotivationLossFreq = "frekuensi_hilang_semangat_kuliah_karena_tekanan_finansial"
	ColFomoStressFreq     = "frekuensi_stres_fomo"
	ColFeelsFomoOften     = "sering_merasa_fomo"
	ColPsychScore         = "skor_psikologis"
	ColSupportNeed        = "kebutuhan_akan_dukungan_emosional_dan_bantuan_psikologis"
	ColSupportScore       = "kebutuhan_akan_dukungan_emosional_dan_bantuan_psikologis_numerik"
)
