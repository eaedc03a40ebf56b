// Package journal - ядро журнала преподавателя: модель занятий и оценок,
// производная статистика, оконный выбор занятий и транзакция редактирования.
//
// Модель выполнения - однопоточная и событийная: все мутации происходят
// синхронно в ответ на дискретные действия пользователя, внутри ядра нет
// ни сети, ни диска. Производные значения (агрегаты, срезы окна) всегда
// вычисляются заново и нигде не кешируются авторитетно.
//
// Ядро тотально над своими входами: отсутствующие ячейки - это "нет данных",
// некорректный числовой ввод деградирует в 0 или nil, промах автонавигации
// "к сегодня" - не событие. Все видимые пользователю сбои - рекомендательные
// уведомления, не ошибки.
package journal
