package osuapi

const beatmapsPayload = `[{
	"beatmapset_id":"1001825","beatmap_id":"2413216","approved":"1","total_length":"224","hit_length":"219",
	"version":"Extra","file_md5":"c8f08438204abfcdd1a748ebfae67421","diff_size":"4","diff_overall":"9",
	"diff_approach":"9.5","diff_drain":"5.5","mode":"0","count_normal":"702","count_slider":"401","count_spinner":"2",
	"submit_date":"2019-07-01 18:34:10","approved_date":"2019-08-14 08:00:02","last_update":"2019-08-06 12:15:27",
	"artist":"Camellia","artist_unicode":null,"title":"Flames Within These Black Feathers","title_unicode":null,
	"creator":"Sotarks","creator_id":"4452992","bpm":"210","source":"","tags":"dark  tech hardcore",
	"genre_id":"10","language_id":"5","favourite_count":"912","rating":"9.21","storyboard":"0","video":"1",
	"download_unavailable":"0","audio_unavailable":"0","playcount":"1200456","passcount":"98312",
	"packs":"S812","max_combo":"1543","diff_aim":"3.4","diff_speed":"3.1","difficultyrating":"6.72"
}]`

const pendingMapPayload = `[{
	"beatmapset_id":"5","beatmap_id":"9","approved":"-2","total_length":"4294967295","hit_length":"0",
	"version":"Easy","file_md5":"","diff_size":"2","diff_overall":"2","diff_approach":"2","diff_drain":"2",
	"mode":"3","count_normal":"10","count_slider":"0","count_spinner":"0",
	"submit_date":"2020-01-01 00:00:00","approved_date":null,"last_update":"2020-01-02 00:00:00",
	"artist":"a","title":"t","creator":"c","creator_id":"1","bpm":"120.5","source":"","tags":"",
	"genre_id":"8","language_id":"1","favourite_count":"0","rating":"0","storyboard":"0","video":"0",
	"download_unavailable":"1","audio_unavailable":"0","playcount":"0","passcount":"0",
	"max_combo":null,"diff_aim":null,"diff_speed":null,"difficultyrating":"1.2"
}]`

const userPayload = `[{
	"user_id":"11903239","username":"flubb 4","join_date":"2018-03-01 20:13:27","count300":"2000000",
	"count100":"150000","count50":"20000","playcount":"25000","ranked_score":"10000000000",
	"total_score":"40000000000","pp_rank":"8123","level":"100.5","pp_raw":"6543.21","accuracy":"98.7654",
	"count_rank_ss":"12","count_rank_ssh":"3","count_rank_s":"400","count_rank_sh":"100","count_rank_a":"900",
	"country":"GB","total_seconds_played":"90061","pp_country_rank":"321","events":[]
}]`

const scoresPayload = `[{
	"score_id":"2781654312","score":"44559304","username":"flubb 4","count300":"1050","count100":"50",
	"count50":"3","countmiss":"2","maxcombo":"1400","countkatu":"30","countgeki":"200","perfect":"0",
	"enabled_mods":"72","user_id":"11903239","date":"2019-09-01 10:00:00","rank":"A","pp":"412.5",
	"replay_available":"1"
},{
	"score_id":"2781654313","score":"1000","username":"someone","count300":"1","count100":"0",
	"count50":"0","countmiss":"0","maxcombo":"1","countkatu":"0","countgeki":"0","perfect":"1",
	"enabled_mods":"0","user_id":"2","date":"2019-09-02 10:00:00","rank":"X","pp":null,
	"replay_available":"0"
}]`

const bestPayload = `[{
	"beatmap_id":"2413216","score_id":"2781654312","score":"44559304","maxcombo":"1400","count50":"3",
	"count100":"50","count300":"1050","countmiss":"2","countkatu":"30","countgeki":"200","perfect":"0",
	"enabled_mods":"16504","user_id":"11903239","date":"2019-09-01 10:00:00","rank":"SH","pp":"412.5",
	"replay_available":"0"
}]`

const matchPayload = `{
	"match":{"match_id":"59225434","name":"OWC: (United Kingdom) vs (Germany)",
		"start_time":"2020-01-05 18:00:00","end_time":"2020-01-05 19:30:00"},
	"games":[{
		"game_id":"300000001","start_time":"2020-01-05 18:05:00","end_time":"2020-01-05 18:09:00",
		"beatmap_id":"2413216","play_mode":"0","match_type":"0","scoring_type":"3","team_type":"2",
		"mods":"1","scores":[
			{"slot":"0","team":"1","user_id":"11903239","score":"800000","maxcombo":"900","rank":"0",
			 "count50":"1","count100":"10","count300":"500","countmiss":"0","countgeki":"50","countkatu":"5",
			 "perfect":"0","pass":"1","enabled_mods":"8"},
			{"slot":"1","team":"2","user_id":"2","score":"700000","maxcombo":"850","rank":"0",
			 "count50":"2","count100":"15","count300":"490","countmiss":"4","countgeki":"40","countkatu":"8",
			 "perfect":"0","pass":"0","enabled_mods":null}
		]
	},{
		"game_id":"300000002","start_time":"2020-01-05 18:12:00","end_time":"2020-01-05 18:16:00",
		"beatmap_id":"9","play_mode":"0","match_type":"0","scoring_type":"0","team_type":"0",
		"mods":"0","scores":[
			{"slot":"0","team":"0","user_id":"2","score":"1","maxcombo":"1","rank":"0","count50":"0",
			 "count100":"0","count300":"1","countmiss":"0","countgeki":"0","countkatu":"0","perfect":"1",
			 "pass":"1","enabled_mods":"0"},
			{"slot":"1","team":"0","user_id":"3","score":"1","maxcombo":"1","rank":"0","count50":"0",
			 "count100":"0","count300":"1","countmiss":"0","countgeki":"0","countkatu":"0","perfect":"1",
			 "pass":"1","enabled_mods":"0"}
		]
	}]
}`

const ongoingMatchPayload = `{"match":{"match_id":"7","name":"open lobby","start_time":"2020-01-05 18:00:00","end_time":null},"games":[]}`

const missingMatchPayload = `{"match":0,"games":[]}`
